package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
// COLAs are applied through the year before the current one.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

func currentYear() int { return nowFunc().Year() }
