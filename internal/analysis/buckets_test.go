package analysis_test

import (
	"math"
	"strings"
	"testing"

	"github.com/pennyflow/Personal-Finance-Backend/internal/analysis"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// TestAnalyze_DataPoints tests the adaptive display bucketing.
//
// WHY: The bucket widths and counts per range are a compatibility contract
// with chart consumers; changing them silently re-scales every rendered
// series.
func TestAnalyze_DataPoints(t *testing.T) {
	t.Run("7d mode yields seven single-day buckets", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "A", 10),
			txn("04-03-2025", model.TypeExpense, "B", 20),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		if len(got.Series.DataPoints) != 7 {
			t.Fatalf("Expected 7 buckets, got %d", len(got.Series.DataPoints))
		}

		// Single-day buckets label both ends with the same day.
		first := got.Series.DataPoints[0]
		if first.Label != "4 Mar – 4 Mar" {
			t.Errorf("Expected label %q, got %q", "4 Mar – 4 Mar", first.Label)
		}
		if first.Expense != 20 {
			t.Errorf("Expected first bucket expense 20, got %v", first.Expense)
		}
	})

	t.Run("21d mode yields exactly seven three-day buckets", func(t *testing.T) {
		txns := []model.Transaction{
			txn("21-03-2025", model.TypeExpense, "A", 10),
			txn("01-03-2025", model.TypeExpense, "B", 20),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range21D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		if len(got.Series.DataPoints) != 7 {
			t.Fatalf("Expected 7 buckets, got %d", len(got.Series.DataPoints))
		}
		if !strings.Contains(got.Series.DataPoints[0].Label, " – ") {
			t.Errorf("Expected a day-range label, got %q", got.Series.DataPoints[0].Label)
		}
	})

	t.Run("30d mode yields ten three-day buckets", func(t *testing.T) {
		txns := []model.Transaction{
			txn("30-03-2025", model.TypeExpense, "A", 10),
			txn("05-03-2025", model.TypeExpense, "B", 20),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(got.Series.DataPoints) != 10 {
			t.Fatalf("Expected 10 buckets, got %d", len(got.Series.DataPoints))
		}
	})

	t.Run("90d mode yields nine ten-day buckets", func(t *testing.T) {
		txns := []model.Transaction{
			txn("30-03-2025", model.TypeExpense, "A", 10),
			txn("05-01-2025", model.TypeExpense, "B", 20),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range90D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(got.Series.DataPoints) != 9 {
			t.Fatalf("Expected 9 buckets, got %d", len(got.Series.DataPoints))
		}
	})

	t.Run("1y mode buckets by calendar month", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "A", 10),
			txn("15-01-2025", model.TypeExpense, "B", 20),
			txn("20-11-2024", model.TypeIncome, "C", 30),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range1Y})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		// One bucket per distinct month present, chronological.
		labels := make([]string, len(got.Series.DataPoints))
		for i, dp := range got.Series.DataPoints {
			labels[i] = dp.Label
		}
		want := []string{"Nov 2024", "Jan 2025", "Mar 2025"}
		if len(labels) != len(want) {
			t.Fatalf("Expected %d month buckets, got %d (%v)", len(want), len(labels), labels)
		}
		for i := range want {
			if labels[i] != want[i] {
				t.Errorf("Bucket %d: expected label %q, got %q", i, want[i], labels[i])
			}
		}
	})

	t.Run("multi-year custom range yields twelve buckets", func(t *testing.T) {
		txns := []model.Transaction{
			txn("01-01-2023", model.TypeExpense, "A", 10),
			txn("31-12-2024", model.TypeExpense, "B", 20),
		}

		got := analysis.Analyze(txns, analysis.Options{
			Mode:  model.RangeCustom,
			Start: "2023-01-01",
			End:   "2024-12-31",
		})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(got.Series.DataPoints) != 12 {
			t.Fatalf("Expected 12 buckets for a multi-year span, got %d", len(got.Series.DataPoints))
		}
	})

	t.Run("buckets conserve the window totals", func(t *testing.T) {
		txns := []model.Transaction{
			txn("30-03-2025", model.TypeIncome, "Salary", 3000),
			txn("25-03-2025", model.TypeExpense, "Rent", 1200),
			txn("10-03-2025", model.TypeExpense, "Groceries", 54.20),
			txn("01-03-2025", model.TypeExpense, "Utilities", 80.55),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range30D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		var income, expense float64
		for _, dp := range got.Series.DataPoints {
			income += dp.Income
			expense += dp.Expense
		}

		if math.Abs(income-got.Summary.IncomeTotal) > 1e-9 {
			t.Errorf("Bucketed income %v disagrees with summary total %v", income, got.Summary.IncomeTotal)
		}
		if math.Abs(expense-got.Summary.ExpenseTotal) > 1e-9 {
			t.Errorf("Bucketed expense %v disagrees with summary total %v", expense, got.Summary.ExpenseTotal)
		}
	})
}

// TestAnalyze_Weekday tests the day-of-week series.
//
// WHY: The weekday chart always renders seven slots, Sunday first, even when
// some weekdays carry no transactions.
func TestAnalyze_Weekday(t *testing.T) {
	txns := []model.Transaction{
		// 2025-03-10 is a Monday.
		txn("10-03-2025", model.TypeExpense, "A", 10),
	}

	got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
	if got == nil {
		t.Fatal("Expected a result, got nil")
	}

	if len(got.Series.Weekday) != 7 {
		t.Fatalf("Expected 7 weekday entries, got %d", len(got.Series.Weekday))
	}
	if got.Series.Weekday[0].Weekday != "Sun" {
		t.Errorf("Expected Sunday first, got %s", got.Series.Weekday[0].Weekday)
	}
	if got.Series.Weekday[1].Expense != 10 {
		t.Errorf("Expected Monday expense 10, got %v", got.Series.Weekday[1].Expense)
	}
	if got.Series.Weekday[3].Expense != 0 {
		t.Errorf("Expected empty weekday to be zero-filled, got %v", got.Series.Weekday[3].Expense)
	}
}
