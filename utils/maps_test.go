package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesFromMapsLink(t *testing.T) {
	cases := []struct {
		name string
		link string
		lat  float64
		lng  float64
		ok   bool
	}{
		{
			name: "at-sign path segment",
			link: "https://www.google.com/maps/@12.971599,77.594566,17z",
			lat:  12.971599, lng: 77.594566, ok: true,
		},
		{
			name: "query parameter",
			link: "https://maps.google.com/?q=-33.867487,151.206990",
			lat:  -33.867487, lng: 151.206990, ok: true,
		},
		{
			name: "ll query parameter",
			link: "https://maps.google.com/maps?ll=40.712776,-74.005974&z=14",
			lat:  40.712776, lng: -74.005974, ok: true,
		},
		{
			name: "place segment",
			link: "https://www.google.com/maps/place/28.613939,77.209021",
			lat:  28.613939, lng: 77.209021, ok: true,
		},
		{
			name: "no coordinates",
			link: "https://www.google.com/maps/place/Central+Garage",
			ok:   false,
		},
		{
			name: "empty link",
			link: "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lng, ok := CoordinatesFromMapsLink(tc.link)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.lat, lat)
			assert.Equal(t, tc.lng, lng)
		})
	}
}

func TestIsShortMapsLink(t *testing.T) {
	assert.True(t, isShortMapsLink("https://maps.app.goo.gl/abc123"))
	assert.True(t, isShortMapsLink("https://goo.gl/maps/xyz"))
	assert.True(t, isShortMapsLink("https://bit.ly/3abc"))
	assert.False(t, isShortMapsLink("https://www.google.com/maps/@1.2,3.4,15z"))
}
