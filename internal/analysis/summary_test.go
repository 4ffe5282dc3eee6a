package analysis_test

import (
	"math"
	"testing"

	"github.com/pennyflow/Personal-Finance-Backend/internal/analysis"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// TestAnalyze_Summary tests the scalar statistics.
//
// WHY: The summary drives the headline figures of the dashboard. Totals must
// conserve the daily series, the savings identity must hold, and the monthly
// projections normalize by days that carry data, not the calendar span.
func TestAnalyze_Summary(t *testing.T) {
	t.Run("totals, savings and monthly projections", func(t *testing.T) {
		// Three distinct days of data: scale factor is 30/3 = 10.
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeIncome, "Salary", 2000),
			txn("09-03-2025", model.TypeExpense, "Rent", 400),
			txn("08-03-2025", model.TypeExpense, "Groceries", 100),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		s := got.Summary

		if s.IncomeTotal != 2000 {
			t.Errorf("Expected income total 2000, got %v", s.IncomeTotal)
		}
		if s.ExpenseTotal != 500 {
			t.Errorf("Expected expense total 500, got %v", s.ExpenseTotal)
		}
		if s.NetSavings != 1500 {
			t.Errorf("Expected net savings 1500, got %v", s.NetSavings)
		}
		if s.SavingsRate == nil || *s.SavingsRate != 0.75 {
			t.Errorf("Expected savings rate 0.75, got %v", s.SavingsRate)
		}
		if s.BurnRateMonthly != 5000 {
			t.Errorf("Expected burn rate 5000, got %v", s.BurnRateMonthly)
		}
		if s.AvgMonthlyIncome != 20000 {
			t.Errorf("Expected avg monthly income 20000, got %v", s.AvgMonthlyIncome)
		}
		if s.AvgMonthlyExpense != 5000 {
			t.Errorf("Expected avg monthly expense 5000, got %v", s.AvgMonthlyExpense)
		}
	})

	t.Run("savings identity holds against the daily series", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeIncome, "Salary", 3210.57),
			txn("09-03-2025", model.TypeExpense, "Rent", 1234.56),
			txn("09-03-2025", model.TypeExpense, "Utilities", 78.99),
			txn("07-03-2025", model.TypeIncome, "Refund", 13.13),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		s := got.Summary

		var income, expense float64
		for _, d := range got.Series.Daily {
			income += d.Income
			expense += d.Expense
		}

		if math.Abs(s.IncomeTotal-income) > 1e-9 {
			t.Errorf("Income total %v disagrees with daily sum %v", s.IncomeTotal, income)
		}
		if math.Abs(s.ExpenseTotal-expense) > 1e-9 {
			t.Errorf("Expense total %v disagrees with daily sum %v", s.ExpenseTotal, expense)
		}
		if math.Abs(s.NetSavings-(s.IncomeTotal-s.ExpenseTotal)) > 0.01 {
			t.Errorf("Savings identity violated: %v != %v - %v", s.NetSavings, s.IncomeTotal, s.ExpenseTotal)
		}
	})

	t.Run("savings rate is nil without income", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "Rent", 1200),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.SavingsRate != nil {
			t.Errorf("Expected nil savings rate with zero income, got %v", *got.Summary.SavingsRate)
		}
	})

	t.Run("expense volatility is the population stdev of daily expenses", func(t *testing.T) {
		// Daily expenses 100 and 300: mean 200, population stdev 100.
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "A", 300),
			txn("09-03-2025", model.TypeExpense, "B", 100),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.VolatilityExpense != 100 {
			t.Errorf("Expected volatility 100, got %v", got.Summary.VolatilityExpense)
		}
	})

	t.Run("volatility is zero for a single day", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 300)}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.VolatilityExpense != 0 {
			t.Errorf("Expected zero volatility, got %v", got.Summary.VolatilityExpense)
		}
	})

	t.Run("best and worst month by savings", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeIncome, "Salary", 3000),
			txn("09-03-2025", model.TypeExpense, "Rent", 1000),
			txn("10-02-2025", model.TypeIncome, "Salary", 3000),
			txn("09-02-2025", model.TypeExpense, "Rent", 3500),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range90D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		s := got.Summary

		if s.BestMonth == nil || s.BestMonth.Label != "Mar 2025" || s.BestMonth.Savings != 2000 {
			t.Errorf("Expected best month Mar 2025 (2000), got %+v", s.BestMonth)
		}
		if s.WorstMonth == nil || s.WorstMonth.Label != "Feb 2025" || s.WorstMonth.Savings != -500 {
			t.Errorf("Expected worst month Feb 2025 (-500), got %+v", s.WorstMonth)
		}
	})
}

// TestAnalyze_Runway tests the runway estimate and the balance hint.
//
// WHY: Runway divides a known balance by the average daily spend. The balance
// comes from the caller when provided; otherwise the newest sidecar text
// containing a balance fragment is scraped for one, and with neither the
// estimate is omitted.
func TestAnalyze_Runway(t *testing.T) {
	t.Run("known balance divides by average daily spend", func(t *testing.T) {
		balance := 1000.0
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "A", 100),
			txn("09-03-2025", model.TypeExpense, "B", 100),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D, KnownBalance: &balance})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		// 200 over 2 days = 100/day; 1000 / 100 = 10 days.
		if got.Summary.RunwayDays == nil || *got.Summary.RunwayDays != 10 {
			t.Errorf("Expected runway 10 days, got %v", got.Summary.RunwayDays)
		}
	})

	t.Run("nil without any balance source", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 100)}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.RunwayDays != nil {
			t.Errorf("Expected nil runway without a balance, got %v", *got.Summary.RunwayDays)
		}
	})

	t.Run("nil with a balance but no expenses", func(t *testing.T) {
		balance := 1000.0
		txns := []model.Transaction{txn("10-03-2025", model.TypeIncome, "Salary", 100)}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D, KnownBalance: &balance})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.RunwayDays != nil {
			t.Errorf("Expected nil runway without expenses, got %v", *got.Summary.RunwayDays)
		}
	})

	t.Run("scrapes the newest balance hint from sidecar text", func(t *testing.T) {
		older := txn("09-03-2025", model.TypeExpense, "A", 100)
		older.AdditionalData = "ref:123; balance: 500"
		newer := txn("10-03-2025", model.TypeExpense, "B", 100)
		newer.AdditionalData = "ref:456; balance: 1,200"

		got := analysis.Analyze([]model.Transaction{older, newer}, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		// 200 over 2 days = 100/day; 1200 / 100 = 12 days.
		if got.Summary.RunwayDays == nil || *got.Summary.RunwayDays != 12 {
			t.Errorf("Expected runway 12 from the newest hint, got %v", got.Summary.RunwayDays)
		}
	})

	t.Run("known balance supersedes sidecar hints", func(t *testing.T) {
		hinted := txn("10-03-2025", model.TypeExpense, "A", 100)
		hinted.AdditionalData = "balance = 9999"
		balance := 500.0

		got := analysis.Analyze([]model.Transaction{hinted}, analysis.Options{Mode: model.Range30D, KnownBalance: &balance})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.RunwayDays == nil || *got.Summary.RunwayDays != 5 {
			t.Errorf("Expected runway 5 from the known balance, got %v", got.Summary.RunwayDays)
		}
	})
}
