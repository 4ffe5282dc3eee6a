// Package analysis derives statistical summaries, time-bucketed series,
// category rollups and anomaly flags from a raw transaction list. The whole
// pipeline is a pure function of its inputs: callers decide when to recompute
// and where to persist the result.
package analysis

import (
	"math"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// Options selects the analysis window. Mode is one of the model.Range*
// tokens; Start and End are ISO "YYYY-MM-DD" dates and are required when Mode
// is "custom". KnownBalance, when set, supersedes the balance hint scraped
// from transaction sidecar text for the runway estimate.
type Options struct {
	Mode         string
	Start        string
	End          string
	KnownBalance *float64
}

// resolved pairs a transaction with its ISO date key so the pipeline parses
// each date exactly once. Transactions whose stored date cannot be resolved
// never make it into a resolved list.
type resolved struct {
	txn model.Transaction
	iso string
	day time.Time
}

// Analyze runs the full pipeline over the given transaction set and returns
// an immutable result. It returns nil only when there is nothing to analyze
// at all (no transactions, or none with a resolvable date); a window that
// happens to contain no transactions yields a fully populated, zeroed result.
func Analyze(txns []model.Transaction, opts Options) *model.Analysis {
	rows := resolveDates(txns)
	if len(rows) == 0 {
		return nil
	}

	start, end, ok := resolveRange(rows, opts)
	if !ok {
		return nil
	}

	inRange := filterRange(rows, start, end)

	result := &model.Analysis{
		Version:     model.AnalysisVersion,
		GeneratedAt: time.Now().UTC(),
		Range:       model.AnalysisRange{Mode: mode(opts), Start: opts.Start, End: opts.End},
		Series: model.AnalysisSeries{
			Daily:      []model.DailyPoint{},
			Monthly:    []model.MonthlyPoint{},
			Weekday:    []model.WeekdayPoint{},
			DataPoints: []model.DataPoint{},
		},
		TopSources: model.TopSources{Income: []model.SourceItem{}, Expense: []model.SourceItem{}},
		Largest:    model.LargestTransactions{Income: []model.LargestItem{}, Expense: []model.LargestItem{}},
		Recurring:  []model.RecurringItem{},
		Spikes:     []model.SpikeItem{},
		Categories: model.CategoryAnalysis{
			Income:  map[string]model.CategoryTotal{},
			Expense: map[string]model.CategoryTotal{},
		},
	}

	if len(inRange) == 0 {
		return result
	}

	daily, rawDaily := buildDaily(inRange)
	monthly := buildMonthly(rawDaily)
	weekday := buildWeekday(inRange)

	result.Series.Daily = daily
	result.Series.Monthly = monthly
	result.Series.Weekday = weekday
	result.Series.DataPoints = buildDataPoints(mode(opts), start, end, daily)

	topIncome, topExpense, categories := buildSources(inRange)
	result.TopSources = model.TopSources{Income: topIncome, Expense: topExpense}
	result.Categories = categories
	result.Largest = model.LargestTransactions{
		Income:  largestOfType(inRange, model.TypeIncome),
		Expense: largestOfType(inRange, model.TypeExpense),
	}
	result.Recurring = buildRecurring(inRange)
	result.Spikes = detectSpikes(daily)
	result.Summary = buildSummary(daily, monthly, inRange, opts.KnownBalance)

	return result
}

// InRange returns the raw transactions that fall inside the resolved window,
// for collaborators that need the filtered list itself (display, feeding the
// categorizer) rather than the aggregated result.
func InRange(txns []model.Transaction, opts Options) []model.Transaction {
	rows := resolveDates(txns)
	if len(rows) == 0 {
		return []model.Transaction{}
	}

	start, end, ok := resolveRange(rows, opts)
	if !ok {
		return []model.Transaction{}
	}

	inRange := filterRange(rows, start, end)
	out := make([]model.Transaction, len(inRange))
	for i, r := range inRange {
		out[i] = r.txn
	}
	return out
}

func mode(opts Options) string {
	if opts.Mode == "" {
		return model.Range90D
	}
	return opts.Mode
}

// resolveDates drops transactions without a resolvable calendar date. No
// error is raised: an unparseable date marks the row unusable, nothing more.
func resolveDates(txns []model.Transaction) []resolved {
	rows := make([]resolved, 0, len(txns))
	for _, t := range txns {
		if t.Date == "" {
			continue
		}
		iso, ok := dates.CanonicalToISO(t.Date)
		if !ok {
			continue
		}
		day, err := dates.ParseISO(iso)
		if err != nil {
			continue
		}
		rows = append(rows, resolved{txn: t, iso: iso, day: day})
	}
	return rows
}

func filterRange(rows []resolved, start, end time.Time) []resolved {
	out := make([]resolved, 0, len(rows))
	for _, r := range rows {
		if !r.day.Before(start) && !r.day.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// round2 rounds a currency value to two decimals at the point of exposure.
// Intermediate accumulation stays unrounded to avoid compounding drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
