package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBirthYear is returned when a birth year falls outside a statutory schedule.
var ErrInvalidBirthYear = errors.New("invalid birth year")

// MinScheduleBirthYear is the earliest birth year covered by FullRetirementAgeMonths.
const MinScheduleBirthYear = 1900

const monthsPerYear = 12

// PrecedingDay returns the calendar day before t.
// A person attains an age on the day before the anniversary of their birth,
// so every birth date is shifted by this function before age arithmetic.
func PrecedingDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}

// FullRetirementAgeMonths returns the Social Security full retirement age, in
// months, for the given birth year (use the preceding-day adjusted year).
func FullRetirementAgeMonths(birthYear int) (int, error) {
	switch {
	case birthYear < MinScheduleBirthYear:
		return 0, fmt.Errorf("%w: %d is before %d", ErrInvalidBirthYear, birthYear, MinScheduleBirthYear)
	case birthYear <= 1937:
		return 65 * monthsPerYear, nil
	case birthYear <= 1942:
		return 65*monthsPerYear + (birthYear-1937)*2, nil // 65 and 2..10 months
	case birthYear <= 1954:
		return 66 * monthsPerYear, nil
	case birthYear <= 1959:
		return 66*monthsPerYear + (birthYear-1954)*2, nil // 66 and 2..10 months
	default: // 1960 and later
		return 67 * monthsPerYear, nil
	}
}

// MonthsBetween returns the whole calendar-month difference a - b.
// Day of month is ignored; the result is negative when a is the earlier month.
func MonthsBetween(a, b time.Time) int {
	return (a.Year()*monthsPerYear + int(a.Month())) - (b.Year()*monthsPerYear + int(b.Month()))
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date.
// Like time.AddDate, an out-of-range day rolls into the following month.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// AddMonthsClamped adds months to a date, clamping the day to the last day of
// the target month instead of rolling over (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(date time.Time, months int) time.Time {
	first := time.Date(date.Year(), date.Month()+time.Month(months), 1,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	day := date.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
