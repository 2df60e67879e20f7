// Package schoolyear maps calendar dates to the school-year accounting
// period used by leave credits and reporting. A school year runs June
// through May and is labeled "Y1-Y2".
package schoolyear

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartMonth is the first month of a school year.
const StartMonth = time.June

// ForDate returns the school-year label covering t.
// June 2024 onward belongs to "2024-2025"; May 2024 still belongs to
// "2023-2024".
func ForDate(t time.Time) string {
	year := t.Year()
	if t.Month() >= StartMonth {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// Current returns the label for the present moment.
func Current() string {
	return ForDate(time.Now())
}

// Parse validates a "YYYY-YYYY" label and returns its start year.
func Parse(label string) (int, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid school year %q, expected YYYY-YYYY", label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid school year %q: %w", label, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid school year %q: %w", label, err)
	}
	if end != start+1 {
		return 0, fmt.Errorf("invalid school year %q, end year must be start year + 1", label)
	}
	return start, nil
}

// Next returns the label of the school year after the given one.
func Next(label string) (string, error) {
	start, err := Parse(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", start+1, start+2), nil
}

// Previous returns the label of the school year before the given one.
func Previous(label string) (string, error) {
	start, err := Parse(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", start-1, start), nil
}
