package appointment

import "time"

// Overlaps is the half-open interval test: [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching intervals do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
