package booking

import "time"

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. The inequalities are strict:
// windows that only touch at an endpoint do not overlap. Commutative in its
// two window arguments.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidWindow reports whether [start, end) is a well-formed booking window.
func ValidWindow(start, end time.Time) bool {
	return start.Before(end)
}
