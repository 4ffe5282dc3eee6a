package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// ValidRangeMode contains the accepted range tokens.
var ValidRangeMode = map[string]bool{
	model.Range7D: true, model.Range14D: true, model.Range21D: true,
	model.Range30D: true, model.Range90D: true, model.Range180D: true,
	model.Range1Y: true, model.RangeMax: true, model.RangeCustom: true,
}

// ValidateAnalysisRequest validates a range selection. Custom mode requires
// both bounds in ISO form with start not after end; named modes must be known
// tokens. An empty mode is allowed and defaults downstream.
func ValidateAnalysisRequest(req request.AnalysisRequest) error {
	errors := make(map[string]string)

	if req.Mode != "" && !ValidRangeMode[req.Mode] {
		errors["mode"] = fmt.Sprintf("invalid range mode: %s", req.Mode)
	}

	if req.Mode == model.RangeCustom {
		var start, end time.Time
		var startErr, endErr error

		if strings.TrimSpace(req.Start) == "" {
			errors["start"] = "start is required for custom range"
		} else if start, startErr = dates.ParseISO(req.Start); startErr != nil {
			errors["start"] = startErr.Error()
		}

		if strings.TrimSpace(req.End) == "" {
			errors["end"] = "end is required for custom range"
		} else if end, endErr = dates.ParseISO(req.End); endErr != nil {
			errors["end"] = endErr.Error()
		}

		if len(errors) == 0 && start.After(end) {
			errors["range"] = "start must not be after end"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
