package analysis

import (
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// Day counts for the named relative range tokens. An unrecognized token falls
// back to 30 days, matching the behavior existing callers depend on.
var modeDays = map[string]int{
	model.Range7D:   7,
	model.Range14D:  14,
	model.Range21D:  21,
	model.Range30D:  30,
	model.Range90D:  90,
	model.Range180D: 180,
	model.Range1Y:   365,
}

// resolveRange computes the inclusive [start, end] window for the requested
// range. The end anchors to the latest transaction date unless a custom end
// is given; relative modes start N-1 days before the end so the window
// includes the end day itself. Returns ok=false when the window cannot be
// resolved (no dated rows, or a custom bound that does not parse).
func resolveRange(rows []resolved, opts Options) (start, end time.Time, ok bool) {
	if len(rows) == 0 {
		return time.Time{}, time.Time{}, false
	}

	m := mode(opts)

	if m == model.RangeCustom && opts.End != "" {
		var err error
		end, err = dates.ParseISO(opts.End)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	} else {
		end = rows[0].day
		for _, r := range rows[1:] {
			if r.day.After(end) {
				end = r.day
			}
		}
	}

	switch {
	case m == model.RangeCustom:
		var err error
		start, err = dates.ParseISO(opts.Start)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	case m == model.RangeMax:
		start = rows[0].day
		for _, r := range rows[1:] {
			if r.day.Before(start) {
				start = r.day
			}
		}
	default:
		days, found := modeDays[m]
		if !found {
			days = 30
		}
		start = end.AddDate(0, 0, -(days - 1))
	}

	return start, end, true
}
