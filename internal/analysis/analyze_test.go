package analysis_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/analysis"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// txn builds a transaction with a canonical DD-MM-YYYY date for engine tests.
// The engine is a pure function, so no database is involved here.
func txn(date, txnType, desc string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          desc + "-" + date,
		Date:        date,
		Description: desc,
		Type:        txnType,
		Amount:      amount,
	}
}

// TestAnalyze_EmptyInputs tests the nil-vs-zeroed result contract.
//
// WHY: Consumers distinguish "nothing to analyze at all" (nil) from "this
// window happens to be empty" (a fully populated result with zeroed values
// and empty, non-nil collections). Conflating the two breaks cold-start
// rendering.
func TestAnalyze_EmptyInputs(t *testing.T) {
	t.Run("no transactions yields nil", func(t *testing.T) {
		if got := analysis.Analyze(nil, analysis.Options{}); got != nil {
			t.Errorf("Expected nil for empty input, got %+v", got)
		}
		if got := analysis.Analyze([]model.Transaction{}, analysis.Options{}); got != nil {
			t.Errorf("Expected nil for empty slice, got %+v", got)
		}
	})

	t.Run("no resolvable dates yields nil", func(t *testing.T) {
		txns := []model.Transaction{
			txn("not a date", model.TypeExpense, "A", 10),
			txn("", model.TypeExpense, "B", 20),
		}
		if got := analysis.Analyze(txns, analysis.Options{}); got != nil {
			t.Errorf("Expected nil when no date resolves, got %+v", got)
		}
	})

	t.Run("unparseable custom bounds yield nil", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 10)}
		got := analysis.Analyze(txns, analysis.Options{Mode: model.RangeCustom, Start: "bad", End: "2025-03-10"})
		if got != nil {
			t.Errorf("Expected nil for unparseable custom start, got %+v", got)
		}
	})

	t.Run("empty window yields zeroed result with empty collections", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 10)}
		got := analysis.Analyze(txns, analysis.Options{
			Mode:  model.RangeCustom,
			Start: "2020-01-01",
			End:   "2020-01-31",
		})
		if got == nil {
			t.Fatal("Expected a zeroed result for an empty window, got nil")
		}

		if got.Version != model.AnalysisVersion {
			t.Errorf("Expected version %d, got %d", model.AnalysisVersion, got.Version)
		}
		if got.Summary.IncomeTotal != 0 || got.Summary.ExpenseTotal != 0 {
			t.Errorf("Expected zeroed summary, got %+v", got.Summary)
		}
		if got.Summary.SavingsRate != nil {
			t.Error("Expected nil savings rate for an empty window")
		}
		if got.Series.Daily == nil || len(got.Series.Daily) != 0 {
			t.Errorf("Expected empty non-nil daily series, got %v", got.Series.Daily)
		}
		if got.Largest.Expense == nil || len(got.Largest.Expense) != 0 {
			t.Errorf("Expected empty non-nil largest list, got %v", got.Largest.Expense)
		}
		if got.Categories.Income == nil || got.Categories.Expense == nil {
			t.Error("Expected non-nil category maps")
		}
	})
}

// TestAnalyze_RangeResolution tests window anchoring and closure.
//
// WHY: Relative windows anchor to the most recent transaction date, not the
// wall clock, and are inclusive on both ends. An off-by-one here shifts every
// downstream figure.
func TestAnalyze_RangeResolution(t *testing.T) {
	t.Run("7d window spans exactly seven days ending at the latest date", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "latest", 10),
			txn("04-03-2025", model.TypeExpense, "edge in", 20),  // end - 6 days
			txn("03-03-2025", model.TypeExpense, "just out", 30), // end - 7 days
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		if len(got.Series.Daily) != 2 {
			t.Fatalf("Expected 2 daily points, got %d", len(got.Series.Daily))
		}
		if got.Series.Daily[0].Date != "2025-03-04" {
			t.Errorf("Expected first daily point 2025-03-04, got %s", got.Series.Daily[0].Date)
		}
		if got.Summary.ExpenseTotal != 30 {
			t.Errorf("Expected expense total 30, got %v", got.Summary.ExpenseTotal)
		}
	})

	t.Run("max spans the full history", func(t *testing.T) {
		txns := []model.Transaction{
			txn("01-01-2020", model.TypeExpense, "old", 5),
			txn("10-03-2025", model.TypeExpense, "new", 10),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.RangeMax})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.ExpenseTotal != 15 {
			t.Errorf("Expected both transactions in range, total 15, got %v", got.Summary.ExpenseTotal)
		}
	})

	t.Run("unknown mode falls back to a 30 day window", func(t *testing.T) {
		txns := []model.Transaction{
			txn("30-01-2025", model.TypeExpense, "latest", 10),
			txn("01-01-2025", model.TypeExpense, "edge in", 20),  // end - 29 days
			txn("31-12-2024", model.TypeExpense, "just out", 30), // end - 30 days
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: "fortnightly"})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.ExpenseTotal != 30 {
			t.Errorf("Expected 30-day fallback window with total 30, got %v", got.Summary.ExpenseTotal)
		}
	})

	t.Run("empty mode defaults to 90d", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 10)}
		got := analysis.Analyze(txns, analysis.Options{})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Range.Mode != model.Range90D {
			t.Errorf("Expected default mode 90d, got %s", got.Range.Mode)
		}
	})

	t.Run("rows without resolvable dates are excluded, not fatal", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "good", 10),
			txn("99/99/9999", model.TypeExpense, "bad", 500),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.RangeMax})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if got.Summary.ExpenseTotal != 10 {
			t.Errorf("Expected the undated row to be excluded, got total %v", got.Summary.ExpenseTotal)
		}
	})
}

// TestAnalyze_Idempotence tests that repeated runs produce identical output.
//
// WHY: The result is recomputed on demand and persisted; consumers diff
// successive snapshots. Map iteration order must never leak into the output.
func TestAnalyze_Idempotence(t *testing.T) {
	txns := []model.Transaction{
		txn("10-03-2025", model.TypeIncome, "Salary", 3000),
		txn("09-03-2025", model.TypeExpense, "Rent", 1200),
		txn("08-03-2025", model.TypeExpense, "Coffee Shop", 4.50),
		txn("07-03-2025", model.TypeExpense, "Coffee Shop", 5.00),
		txn("06-03-2025", model.TypeExpense, "Coffee Shop", 4.75),
		txn("05-03-2025", model.TypeExpense, "Groceries", 54.20),
		txn("01-02-2025", model.TypeIncome, "Refund", 25),
	}
	opts := analysis.Options{Mode: model.Range90D}

	a := analysis.Analyze(txns, opts)
	b := analysis.Analyze(txns, opts)
	if a == nil || b == nil {
		t.Fatal("Expected results, got nil")
	}

	// GeneratedAt is the only field allowed to differ between runs.
	a.GeneratedAt = time.Time{}
	b.GeneratedAt = time.Time{}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Repeated analysis runs disagree:\nfirst:  %+v\nsecond: %+v", a, b)
	}
}

// TestInRange tests the raw filtered transaction list.
//
// WHY: The transaction drill-down view shows exactly the rows that fed the
// aggregates; the two must share one range resolution.
func TestInRange(t *testing.T) {
	t.Run("returns only transactions inside the window", func(t *testing.T) {
		txns := []model.Transaction{
			txn("10-03-2025", model.TypeExpense, "in", 10),
			txn("01-01-2024", model.TypeExpense, "out", 20),
		}

		got := analysis.InRange(txns, analysis.Options{Mode: model.Range30D})
		if len(got) != 1 {
			t.Fatalf("Expected 1 transaction in range, got %d", len(got))
		}
		if got[0].Description != "in" {
			t.Errorf("Expected the in-range transaction, got %s", got[0].Description)
		}
	})

	t.Run("returns empty slice for empty input", func(t *testing.T) {
		got := analysis.InRange(nil, analysis.Options{})
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", got)
		}
	})
}
