package model

import "time"

// AnalysisVersion is the schema version stamped on every Analysis. A persisted
// snapshot whose version does not match is treated as a cache miss and
// discarded on read.
const AnalysisVersion = 2

// Range modes accepted by the analysis engine. Relative modes anchor the
// window to the most recent transaction date; "max" spans the full history;
// "custom" requires explicit start and end dates.
const (
	Range7D     = "7d"
	Range14D    = "14d"
	Range21D    = "21d"
	Range30D    = "30d"
	Range90D    = "90d"
	Range180D   = "180d"
	Range1Y     = "1y"
	RangeMax    = "max"
	RangeCustom = "custom"
)

// DailyPoint is the income/expense/savings triple for one calendar day.
// Date is an ISO "YYYY-MM-DD" key. Days without transactions produce no entry.
type DailyPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// MonthlyPoint aggregates one calendar month of daily points.
// MonthKey is "YYYY-MM"; Label is the display form, e.g. "Mar 2025".
type MonthlyPoint struct {
	MonthKey string  `json:"monthKey"`
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Savings  float64 `json:"savings"`
}

// WeekdayPoint aggregates income and expense by day of week ("Sun".."Sat").
type WeekdayPoint struct {
	Weekday string  `json:"weekday"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DataPoint is one display bucket of the adaptive-resolution series. Label is
// either a day range ("2 Jan – 11 Jan") or a month name ("Mar 2025").
type DataPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// SourceItem is one entry of the top-sources rollup: a normalized description
// label with its summed total and occurrence count.
type SourceItem struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// LargestItem is one of the largest single transactions of a type.
type LargestItem struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
}

// RecurringType values for RecurringItem. A label whose occurrences are all
// income or all expense carries that type; anything else is "mixed".
const (
	RecurringMixed = "mixed"
)

// RecurringItem describes a label seen three or more times within the range.
type RecurringItem struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	Total     float64 `json:"total"`
	AvgAmount float64 `json:"avgAmount"`
	FirstDate string  `json:"firstDate"`
	LastDate  string  `json:"lastDate"`
	Type      string  `json:"type"`
	Category  string  `json:"category,omitempty"`
}

// SpikeItem flags a calendar day whose expense total is a statistical outlier
// (z-score above 2 against the in-range daily expense distribution).
type SpikeItem struct {
	Date    string  `json:"date"`
	Expense float64 `json:"expense"`
	Z       float64 `json:"z"`
}

// CategoryTotal accumulates per-category totals for transactions that carry a
// category tag. Independent of the label-based top-sources grouping.
type CategoryTotal struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CategoryAnalysis holds per-category totals split by transaction type.
type CategoryAnalysis struct {
	Income  map[string]CategoryTotal `json:"income"`
	Expense map[string]CategoryTotal `json:"expense"`
}

// MonthHighlight names the month with the best or worst savings.
type MonthHighlight struct {
	Label   string  `json:"label"`
	Savings float64 `json:"savings"`
}

// AnalysisRange echoes the requested range back to the caller.
type AnalysisRange struct {
	Mode  string `json:"mode"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AnalysisSummary holds the scalar statistics of an analysis run. All currency
// values are rounded to two decimals. SavingsRate and RunwayDays are nil when
// their denominators are unavailable (zero income, no balance hint).
type AnalysisSummary struct {
	IncomeTotal       float64         `json:"incomeTotal"`
	ExpenseTotal      float64         `json:"expenseTotal"`
	NetSavings        float64         `json:"netSavings"`
	SavingsRate       *float64        `json:"savingsRate"`
	BurnRateMonthly   float64         `json:"burnRateMonthly"`
	AvgMonthlyIncome  float64         `json:"avgMonthlyIncome"`
	AvgMonthlyExpense float64         `json:"avgMonthlyExpense"`
	VolatilityExpense float64         `json:"volatilityExpense"`
	RunwayDays        *float64        `json:"runwayDays"`
	BestMonth         *MonthHighlight `json:"bestMonth,omitempty"`
	WorstMonth        *MonthHighlight `json:"worstMonth,omitempty"`
}

// AnalysisSeries groups the time-bucketed series of an analysis run.
type AnalysisSeries struct {
	Daily      []DailyPoint   `json:"daily"`
	Monthly    []MonthlyPoint `json:"monthly"`
	Weekday    []WeekdayPoint `json:"weekday"`
	DataPoints []DataPoint    `json:"dataPoints"`
}

// TopSources holds the top-5 income and expense sources by summed total.
type TopSources struct {
	Income  []SourceItem `json:"income"`
	Expense []SourceItem `json:"expense"`
}

// LargestTransactions holds the top-5 largest single transactions per type.
type LargestTransactions struct {
	Income  []LargestItem `json:"income"`
	Expense []LargestItem `json:"expense"`
}

// Analysis is the complete, immutable result of one analysis run. It is
// replaced wholesale on every recomputation and persisted as a versioned
// snapshot for cold-start rendering.
type Analysis struct {
	Version     int                 `json:"version"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Range       AnalysisRange       `json:"range"`
	Summary     AnalysisSummary     `json:"summary"`
	Series      AnalysisSeries      `json:"series"`
	TopSources  TopSources          `json:"topSources"`
	Largest     LargestTransactions `json:"largest"`
	Recurring   []RecurringItem     `json:"recurring"`
	Spikes      []SpikeItem         `json:"spikes"`
	Categories  CategoryAnalysis    `json:"categories"`
}
