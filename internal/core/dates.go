package core

import (
	"math"
	"time"
)

// addMonths advances d by n calendar months, preserving the day-of-month where
// valid. When the target month is shorter (e.g. Jan 31 + 1 month) the result
// clamps to the last day of the target month instead of rolling over the way
// time.AddDate would.
func addMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, d.Location())
	target := first.AddDate(0, n, 0)

	if last := lastDayOfMonth(target); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

func lastDayOfMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}

// daysUntil returns the number of whole days from 'from' until 'until',
// rounding partial days up. Returns 0 when 'until' is not in the future.
func daysUntil(from, until time.Time) int {
	if !until.After(from) {
		return 0
	}
	return int(math.Ceil(until.Sub(from).Hours() / 24))
}

// round2 rounds a positive amount half-up to two decimal places (cents).
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
