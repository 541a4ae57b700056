package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2026, time.September, 10, hour, 0, 0, 0, time.Local)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", at(10), at(12), at(10), at(12), true},
		{"partial overlap", at(10), at(12), at(11), at(13), true},
		{"containment", at(10), at(14), at(11), at(12), true},
		{"disjoint", at(8), at(9), at(10), at(11), false},
		{"touching endpoints do not overlap", at(10), at(12), at(12), at(14), false},
		{"touching endpoints reversed", at(12), at(14), at(10), at(12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestValidWindow(t *testing.T) {
	assert.True(t, ValidWindow(at(10), at(11)))
	assert.False(t, ValidWindow(at(11), at(10)))
	assert.False(t, ValidWindow(at(10), at(10)))
}
