package payroll

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05"}

// ValidateTimeEntries checks a batch before it is used for payroll. It never
// fails fast: every problem of every entry is reported, numbered from 1 in
// input order. Calculate does not call it.
func ValidateTimeEntries(entries []TimeEntry) ValidationResult {
	errs := make([]string, 0)
	for i, entry := range entries {
		n := i + 1
		if !entry.Approved {
			errs = append(errs, fmt.Sprintf("Time entry %d is not approved", n))
		}
		if entry.RegularHours < 0 || entry.OvertimeHours < 0 {
			errs = append(errs, fmt.Sprintf("Time entry %d has negative hours", n))
		}
		if entry.RegularHours+entry.OvertimeHours > maxHoursPerDay {
			errs = append(errs, fmt.Sprintf("Time entry %d exceeds 24 hours in a day", n))
		}

		clockIn := strings.TrimSpace(entry.ClockIn)
		clockOut := strings.TrimSpace(entry.ClockOut)
		switch {
		case clockIn != "" && clockOut != "":
			if !clockOutAfterIn(entry.Date, clockIn, clockOut) {
				errs = append(errs, fmt.Sprintf("Time entry %d has invalid clock out time", n))
			}
		case clockIn != "" || clockOut != "":
			errs = append(errs, fmt.Sprintf("Time entry %d has only one of clock in/clock out", n))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// clockOutAfterIn reports whether clockOut is strictly later than clockIn on
// the entry date. Unparsable values count as invalid.
func clockOutAfterIn(date, clockIn, clockOut string) bool {
	in, err := parseClock(date, clockIn)
	if err != nil {
		return false
	}
	out, err := parseClock(date, clockOut)
	if err != nil {
		return false
	}
	return out.After(in)
}

func parseClock(date, clock string) (time.Time, error) {
	value := strings.TrimSpace(date) + " " + clock
	var lastErr error
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseDate accepts RFC3339 or YYYY-MM-DD.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
