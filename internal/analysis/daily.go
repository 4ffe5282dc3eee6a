package analysis

import (
	"sort"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// accumulator holds the raw (unrounded) running totals for one bucket key.
type accumulator struct {
	income  float64
	expense float64
}

// buildDaily reduces the in-range transactions to one point per distinct
// calendar day, sorted ascending by ISO date. Days without transactions
// produce no entry; bucketing handles sparse ranges later. The returned map
// carries the unrounded per-day totals for consumers that aggregate further
// (the monthly series), while the slice exposes rounded values.
func buildDaily(inRange []resolved) ([]model.DailyPoint, map[string]accumulator) {
	byDay := make(map[string]accumulator)
	for _, r := range inRange {
		acc := byDay[r.iso]
		switch r.txn.Type {
		case model.TypeIncome:
			acc.income += r.txn.Amount
		case model.TypeExpense:
			acc.expense += r.txn.Amount
		}
		byDay[r.iso] = acc
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	daily := make([]model.DailyPoint, len(keys))
	for i, k := range keys {
		acc := byDay[k]
		daily[i] = model.DailyPoint{
			Date:    k,
			Income:  round2(acc.income),
			Expense: round2(acc.expense),
			Savings: round2(acc.income - acc.expense),
		}
	}

	return daily, byDay
}

// buildMonthly regroups the raw daily totals by "YYYY-MM" key, ascending.
func buildMonthly(rawDaily map[string]accumulator) []model.MonthlyPoint {
	byMonth := make(map[string]accumulator)
	for day, acc := range rawDaily {
		mk := day[:7]
		m := byMonth[mk]
		m.income += acc.income
		m.expense += acc.expense
		byMonth[mk] = m
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	monthly := make([]model.MonthlyPoint, len(keys))
	for i, mk := range keys {
		acc := byMonth[mk]
		monthly[i] = model.MonthlyPoint{
			MonthKey: mk,
			Label:    dates.MonthLabel(mk),
			Income:   round2(acc.income),
			Expense:  round2(acc.expense),
			Savings:  round2(acc.income - acc.expense),
		}
	}

	return monthly
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// buildWeekday aggregates income and expense by day of week, Sunday first.
// All seven entries are always present, zero-filled where nothing was spent.
func buildWeekday(inRange []resolved) []model.WeekdayPoint {
	var agg [7]accumulator
	for _, r := range inRange {
		w := int(r.day.Weekday())
		switch r.txn.Type {
		case model.TypeIncome:
			agg[w].income += r.txn.Amount
		case model.TypeExpense:
			agg[w].expense += r.txn.Amount
		}
	}

	weekday := make([]model.WeekdayPoint, 7)
	for w := time.Sunday; w <= time.Saturday; w++ {
		weekday[w] = model.WeekdayPoint{
			Weekday: weekdayNames[w],
			Income:  round2(agg[w].income),
			Expense: round2(agg[w].expense),
		}
	}
	return weekday
}
