// Package dates normalizes the ambiguous date strings found in bank CSV
// exports. Column order (day/month/year) and the separator character are
// inferred once per batch from the whole column, not per row, so that a file
// mixing "03-04-2024" and "15-04-2024" is interpreted consistently.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical and compute-side layouts. Transactions are stored in canonical
// form; all aggregation keys use the ISO form so that lexical order equals
// chronological order.
const (
	CanonicalLayout = "02-01-2006" // DD-MM-YYYY
	ISOLayout       = "2006-01-02" // YYYY-MM-DD
)

// Order is an explicit day/month ordering hint for the ambiguous case where
// both non-year columns only contain values <= 12 (e.g. "03-04-2024").
// Inference cannot resolve that case from data alone; callers importing files
// from a known locale should pass a hint. The default preserves the historical
// day-first behavior.
type Order int

const (
	// OrderAuto lets inference decide, falling back to day-first on ties.
	OrderAuto Order = iota
	// OrderDayFirst forces day-month-year interpretation of the two
	// non-year columns.
	OrderDayFirst
	// OrderMonthFirst forces month-day-year interpretation.
	OrderMonthFirst
)

var separators = []string{"-", "/", ".", " "}

// Formatter converts one column's raw date strings into canonical and ISO
// form, using the column order inferred from the batch it was built from.
type Formatter struct {
	sep      string
	dayIdx   int
	monthIdx int
	yearIdx  int
}

// InferFormat builds a Formatter from a representative sample of one date
// column. The separator is taken from the first sample that splits into three
// numeric parts; the year column is the one whose values reach 1900 or more;
// of the remaining two columns, the one whose maximum across all samples is
// <= 12 is the month. If both remaining columns stay <= 12 the hint decides,
// defaulting to day-first.
//
// Returns an error only when no sample splits into three numeric parts at
// all; individual malformed rows are tolerated and handled per row by Format.
func InferFormat(samples []string, hint Order) (*Formatter, error) {
	var sep string
	var parsed [][3]int

	for _, s := range samples {
		candidate, parts, ok := splitNumeric(s)
		if !ok {
			continue
		}
		if sep == "" {
			sep = candidate
		}
		if candidate == sep {
			parsed = append(parsed, parts)
		}
	}

	if sep == "" || len(parsed) == 0 {
		return nil, fmt.Errorf("no parseable date sample in column")
	}

	var max [3]int
	for _, p := range parsed {
		for i := 0; i < 3; i++ {
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}

	yearIdx := -1
	for i := 0; i < 3; i++ {
		if max[i] >= 1900 {
			yearIdx = i
			break
		}
	}
	if yearIdx == -1 {
		return nil, fmt.Errorf("no year column found (no part reaches 1900)")
	}

	rest := make([]int, 0, 2)
	for i := 0; i < 3; i++ {
		if i != yearIdx {
			rest = append(rest, i)
		}
	}

	var dayIdx, monthIdx int
	switch {
	case max[rest[0]] <= 12 && max[rest[1]] <= 12:
		// Ambiguous: both candidates could be the month.
		if hint == OrderMonthFirst {
			monthIdx, dayIdx = rest[0], rest[1]
		} else {
			dayIdx, monthIdx = rest[0], rest[1]
		}
	case max[rest[0]] <= 12:
		monthIdx, dayIdx = rest[0], rest[1]
	default:
		dayIdx, monthIdx = rest[0], rest[1]
	}

	return &Formatter{sep: sep, dayIdx: dayIdx, monthIdx: monthIdx, yearIdx: yearIdx}, nil
}

// Format converts one raw date string into canonical "DD-MM-YYYY" form.
// Rows that do not split into three numeric parts, or that name an impossible
// calendar date, are returned unchanged with ok=false; downstream aggregation
// excludes them for lacking a resolvable date.
func (f *Formatter) Format(raw string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(raw), f.sep)
	if len(parts) != 3 {
		return raw, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return raw, false
		}
		nums[i] = n
	}

	day, month, year := nums[f.dayIdx], nums[f.monthIdx], nums[f.yearIdx]
	if !validDate(year, month, day) {
		return raw, false
	}

	return fmt.Sprintf("%02d-%02d-%04d", day, month, year), true
}

// splitNumeric tries each known separator and reports the first that splits
// the string into exactly three integer parts.
func splitNumeric(s string) (string, [3]int, bool) {
	s = strings.TrimSpace(s)
	for _, sep := range separators {
		parts := strings.Split(s, sep)
		if len(parts) != 3 {
			continue
		}
		var nums [3]int
		ok := true
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				ok = false
				break
			}
			nums[i] = n
		}
		if ok {
			return sep, nums, true
		}
	}
	return "", [3]int{}, false
}

func validDate(year, month, day int) bool {
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// CanonicalToISO converts a stored "DD-MM-YYYY" date into its ISO
// "YYYY-MM-DD" key. Returns ok=false for anything that is not a valid
// canonical date.
func CanonicalToISO(canonical string) (string, bool) {
	t, err := time.Parse(CanonicalLayout, canonical)
	if err != nil {
		return "", false
	}
	return t.Format(ISOLayout), true
}

// ParseISO parses a "YYYY-MM-DD" key into a UTC midnight time.
func ParseISO(iso string) (time.Time, error) {
	return time.Parse(ISOLayout, iso)
}

// MonthLabel formats a "YYYY-MM" month key as a display label, e.g. "Mar 2025".
func MonthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("Jan 2006")
}

// ShortDate formats a date for bucket labels, e.g. "2 Jan".
func ShortDate(t time.Time) string {
	return t.Format("2 Jan")
}
