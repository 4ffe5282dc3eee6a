package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// daysPerMonth is the normalization factor for the monthly burn/average
// figures. The denominator is the count of days that actually carry data, not
// the calendar span: a sparse range must not be diluted by empty days.
const daysPerMonth = 30.0

// buildSummary computes the scalar statistics over the daily series.
// inRange is only consulted for the balance hint used by the runway estimate.
func buildSummary(daily []model.DailyPoint, monthly []model.MonthlyPoint, inRange []resolved, knownBalance *float64) model.AnalysisSummary {
	var incomeTotal, expenseTotal float64
	expenses := make([]float64, len(daily))
	for i, d := range daily {
		incomeTotal += d.Income
		expenseTotal += d.Expense
		expenses[i] = d.Expense
	}
	netSavings := incomeTotal - expenseTotal

	var savingsRate *float64
	if incomeTotal > 0 {
		rate := round2(netSavings / incomeTotal)
		savingsRate = &rate
	}

	scale := daysPerMonth / float64(len(daily))

	volatility := 0.0
	if len(expenses) >= 2 {
		volatility = stat.PopStdDev(expenses, nil)
	}

	var runwayDays *float64
	balance := knownBalance
	if balance == nil {
		balance = balanceHint(inRange)
	}
	if balance != nil && expenseTotal > 0 {
		runway := round2(*balance / (expenseTotal / float64(len(daily))))
		runwayDays = &runway
	}

	summary := model.AnalysisSummary{
		IncomeTotal:       round2(incomeTotal),
		ExpenseTotal:      round2(expenseTotal),
		NetSavings:        round2(netSavings),
		SavingsRate:       savingsRate,
		BurnRateMonthly:   round2(expenseTotal * scale),
		AvgMonthlyIncome:  round2(incomeTotal * scale),
		AvgMonthlyExpense: round2(expenseTotal * scale),
		VolatilityExpense: round2(volatility),
		RunwayDays:        runwayDays,
	}

	if len(monthly) > 0 {
		best, worst := monthly[0], monthly[0]
		for _, m := range monthly[1:] {
			if m.Savings > best.Savings {
				best = m
			}
			if m.Savings < worst.Savings {
				worst = m
			}
		}
		summary.BestMonth = &model.MonthHighlight{Label: best.Label, Savings: best.Savings}
		summary.WorstMonth = &model.MonthHighlight{Label: worst.Label, Savings: worst.Savings}
	}

	return summary
}

// balanceHintPattern matches "balance: 12,345.67" style fragments embedded in
// the free-text sidecar column. A brittle compatibility shim: callers that
// know the balance should pass Options.KnownBalance instead.
var balanceHintPattern = regexp.MustCompile(`(?i)balance\s*[:=]?\s*([0-9,.\s]+)`)

// balanceHint scans the in-range transactions from most recent insertion
// backward and returns the first parseable balance embedded in a sidecar
// field, or nil when none is found.
func balanceHint(inRange []resolved) *float64 {
	for i := len(inRange) - 1; i >= 0; i-- {
		m := balanceHintPattern.FindStringSubmatch(inRange[i].txn.AdditionalData)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(strings.ReplaceAll(m[1], ",", ""))
		if v, ok := parseLeadingFloat(raw); ok {
			return &v
		}
	}
	return nil
}

// parseLeadingFloat parses the leading numeric prefix of s, tolerating
// trailing junk the capture group may have swallowed (spaces, a second
// number).
func parseLeadingFloat(s string) (float64, bool) {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
