package analysis_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/pennyflow/Personal-Finance-Backend/internal/analysis"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// TestAnalyze_Spikes tests anomaly detection on the daily expense series.
//
// WHY: A day is flagged only when its expense total exceeds two population
// standard deviations above the window mean. The threshold is strict, the
// list is capped at five, and flat or near-empty series must never flag.
func TestAnalyze_Spikes(t *testing.T) {
	t.Run("one outlier day among steady spending is flagged", func(t *testing.T) {
		// Five days at 100 and one at 900: the outlier sits at z = sqrt(5),
		// comfortably above the threshold.
		txns := []model.Transaction{
			txn("05-03-2025", model.TypeExpense, "A", 100),
			txn("06-03-2025", model.TypeExpense, "B", 100),
			txn("07-03-2025", model.TypeExpense, "C", 100),
			txn("08-03-2025", model.TypeExpense, "D", 100),
			txn("09-03-2025", model.TypeExpense, "E", 100),
			txn("10-03-2025", model.TypeExpense, "New Laptop", 900),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		if len(got.Spikes) != 1 {
			t.Fatalf("Expected 1 spike, got %d: %+v", len(got.Spikes), got.Spikes)
		}
		s := got.Spikes[0]
		if s.Date != "2025-03-10" {
			t.Errorf("Expected the 900 day flagged, got %s", s.Date)
		}
		if s.Expense != 900 {
			t.Errorf("Expected expense 900, got %v", s.Expense)
		}
		if math.Abs(s.Z-math.Sqrt(5)) > 1e-9 {
			t.Errorf("Expected z = sqrt(5) = %v, got %v", math.Sqrt(5), s.Z)
		}
	})

	t.Run("flat series flags nothing", func(t *testing.T) {
		txns := []model.Transaction{
			txn("08-03-2025", model.TypeExpense, "A", 50),
			txn("09-03-2025", model.TypeExpense, "B", 50),
			txn("10-03-2025", model.TypeExpense, "C", 50),
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(got.Spikes) != 0 {
			t.Errorf("Expected no spikes on a flat series, got %+v", got.Spikes)
		}
	})

	t.Run("single-day series flags nothing", func(t *testing.T) {
		txns := []model.Transaction{txn("10-03-2025", model.TypeExpense, "A", 9999)}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.Range7D})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(got.Spikes) != 0 {
			t.Errorf("Expected no spikes with fewer than two days, got %+v", got.Spikes)
		}
	})

	t.Run("caps at five spikes", func(t *testing.T) {
		// 29 quiet days and 6 identical outliers: each outlier sits at
		// z = sqrt(29/6) > 2, so all six qualify and the cap drops one.
		txns := make([]model.Transaction, 0, 35)
		for i := 1; i <= 29; i++ {
			txns = append(txns, txn(fmt.Sprintf("%02d-03-2025", i), model.TypeExpense, "quiet", 10))
		}
		for i := 30; i <= 31; i++ {
			txns = append(txns, txn(fmt.Sprintf("%02d-03-2025", i), model.TypeExpense, "loud", 3000))
		}
		for i := 1; i <= 4; i++ {
			txns = append(txns, txn(fmt.Sprintf("%02d-04-2025", i), model.TypeExpense, "loud", 3000))
		}

		got := analysis.Analyze(txns, analysis.Options{Mode: model.RangeMax})
		if got == nil {
			t.Fatal("Expected a result, got nil")
		}

		if len(got.Spikes) != 5 {
			t.Fatalf("Expected the cap to leave exactly 5 spikes, got %d", len(got.Spikes))
		}
		// Equal z values fall back to date order, so the earliest five stay.
		if got.Spikes[0].Date != "2025-03-30" {
			t.Errorf("Expected the earliest outlier first, got %s", got.Spikes[0].Date)
		}
		for i := 1; i < len(got.Spikes); i++ {
			if got.Spikes[i].Z > got.Spikes[i-1].Z {
				t.Errorf("Spikes not ordered by z descending: %+v", got.Spikes)
			}
		}
	})
}
