package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
// It is consulted only when a plan does not pin its current year.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// resolveCurrentYear returns year when set, otherwise the calendar year of nowFunc.
func resolveCurrentYear(year int) int {
	if year > 0 {
		return year
	}
	return nowFunc().Year()
}
