package request

// AnalysisRequest carries the range selection parsed from query parameters.
// Start and End are ISO "YYYY-MM-DD" dates, required only for custom mode.
type AnalysisRequest struct {
	Mode         string
	Start        string
	End          string
	KnownBalance *float64
}
