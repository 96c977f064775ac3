package sanitizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minCalendarYear = 1
	maxCalendarYear = 9999
)

// NormalizeDate parses a month/day/year value separated by "/" or "-" and
// formats it as MM-DD-YYYY. Day-first input is recovered when the first
// field cannot be a month but the second can.
func NormalizeDate(raw any) Result[string] {
	return normalizeDate(raw, 0, false)
}

// NormalizeDateFixedYear is NormalizeDate with the parsed year discarded and
// replaced by year before calendar validation. A date that only exists in its
// original year (Feb 29) is Invalid when year is not a leap year.
func NormalizeDateFixedYear(raw any, year int) Result[string] {
	return normalizeDate(raw, year, true)
}

// IsValidCalendarDate reports whether year-month-day exists in the
// proleptic Gregorian calendar, for years 1 through 9999.
func IsValidCalendarDate(year, month, day int) bool {
	if year < minCalendarYear || year > maxCalendarYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysIn(time.Month(month), year)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func normalizeDate(raw any, fixedYear int, overrideYear bool) Result[string] {
	s, ok := raw.(string)
	if !ok {
		return Invalid[string]()
	}

	parts, ok := splitDate(strings.TrimSpace(s))
	if !ok {
		return Invalid[string]()
	}

	month, day, year, ok := parseDateParts(parts)
	if !ok {
		return Invalid[string]()
	}

	if month > 12 && day <= 12 {
		month, day = day, month
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Invalid[string]()
	}

	if overrideYear {
		year = fixedYear
	}

	if !IsValidCalendarDate(year, month, day) {
		return Invalid[string]()
	}

	return Valid(fmt.Sprintf("%02d-%02d-%04d", month, day, year))
}

func splitDate(s string) ([]string, bool) {
	var parts []string
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		return nil, false
	}
	return parts, len(parts) == 3
}

func parseDateParts(parts []string) (month, day, year int, ok bool) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}
