package analysis

import (
	"sort"
	"strings"

	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

const (
	maxLabelLen   = 80
	topSourcesCap = 5
	largestCap    = 5
	recurringCap  = 10
	recurringMin  = 3
)

// normalizeLabel canonicalizes a free-text description for grouping:
// lowercased, whitespace collapsed, capped at 80 characters. Empty input maps
// to "unknown" so unlabeled rows still group together.
func normalizeLabel(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if s == "" {
		return "unknown"
	}
	if len(s) > maxLabelLen {
		s = s[:maxLabelLen]
	}
	return s
}

// buildSources groups in-range transactions by normalized label and returns
// the top five per type by summed total, together with the per-category
// totals for transactions that carry a category tag. The category map is
// grouped independently of the label grouping and can disagree with it.
func buildSources(inRange []resolved) (topIncome, topExpense []model.SourceItem, categories model.CategoryAnalysis) {
	type bucket struct {
		total float64
		count int
	}
	incomeBuckets := make(map[string]*bucket)
	expenseBuckets := make(map[string]*bucket)

	categories = model.CategoryAnalysis{
		Income:  map[string]model.CategoryTotal{},
		Expense: map[string]model.CategoryTotal{},
	}

	for _, r := range inRange {
		label := normalizeLabel(r.txn.Label())

		if cat := strings.TrimSpace(r.txn.Category); cat != "" {
			byCat := categories.Expense
			if r.txn.Type == model.TypeIncome {
				byCat = categories.Income
			}
			ct := byCat[cat]
			ct.Total = round2(ct.Total + r.txn.Amount)
			ct.Count++
			byCat[cat] = ct
		}

		buckets := expenseBuckets
		if r.txn.Type == model.TypeIncome {
			buckets = incomeBuckets
		}
		b := buckets[label]
		if b == nil {
			b = &bucket{}
			buckets[label] = b
		}
		b.total += r.txn.Amount
		b.count++
	}

	top := func(buckets map[string]*bucket) []model.SourceItem {
		items := make([]model.SourceItem, 0, len(buckets))
		for label, b := range buckets {
			items = append(items, model.SourceItem{Label: label, Total: round2(b.total), Count: b.count})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Total != items[j].Total {
				return items[i].Total > items[j].Total
			}
			return items[i].Label < items[j].Label
		})
		if len(items) > topSourcesCap {
			items = items[:topSourcesCap]
		}
		return items
	}

	return top(incomeBuckets), top(expenseBuckets), categories
}

// largestOfType returns the five largest single transactions of the given
// type, amount descending, carrying the category tag through when present.
func largestOfType(inRange []resolved, txnType string) []model.LargestItem {
	ofType := make([]resolved, 0, len(inRange))
	for _, r := range inRange {
		if r.txn.Type == txnType {
			ofType = append(ofType, r)
		}
	}

	sort.SliceStable(ofType, func(i, j int) bool {
		return ofType[i].txn.Amount > ofType[j].txn.Amount
	})
	if len(ofType) > largestCap {
		ofType = ofType[:largestCap]
	}

	items := make([]model.LargestItem, len(ofType))
	for i, r := range ofType {
		desc := r.txn.Label()
		if desc == "" {
			desc = "Unknown"
		}
		items[i] = model.LargestItem{
			Date:        r.iso,
			Description: desc,
			Amount:      round2(r.txn.Amount),
			Category:    r.txn.Category,
		}
	}
	return items
}

// buildRecurring collects labels occurring at least three times within the
// range, across both transaction types. A label whose occurrences are all one
// type carries that type; otherwise it is tagged "mixed". Sorted by
// occurrence count descending, capped at ten.
func buildRecurring(inRange []resolved) []model.RecurringItem {
	type entry struct {
		item     model.RecurringItem
		firstISO string
		lastISO  string
		total    float64
	}
	byLabel := make(map[string]*entry)

	for _, r := range inRange {
		label := normalizeLabel(r.txn.Label())

		e := byLabel[label]
		if e == nil {
			e = &entry{
				item: model.RecurringItem{
					Label:     label,
					FirstDate: r.txn.Date,
					LastDate:  r.txn.Date,
					Type:      r.txn.Type,
					Category:  r.txn.Category,
				},
				firstISO: r.iso,
				lastISO:  r.iso,
			}
			byLabel[label] = e
		}

		e.item.Count++
		e.total += r.txn.Amount
		if r.txn.Type != e.item.Type {
			e.item.Type = model.RecurringMixed
		}
		if r.iso < e.firstISO {
			e.firstISO = r.iso
			e.item.FirstDate = r.txn.Date
		}
		if r.iso > e.lastISO {
			e.lastISO = r.iso
			e.item.LastDate = r.txn.Date
		}
	}

	recurring := make([]model.RecurringItem, 0, len(byLabel))
	for _, e := range byLabel {
		if e.item.Count < recurringMin {
			continue
		}
		e.item.Total = round2(e.total)
		e.item.AvgAmount = round2(e.total / float64(e.item.Count))
		recurring = append(recurring, e.item)
	}

	sort.Slice(recurring, func(i, j int) bool {
		if recurring[i].Count != recurring[j].Count {
			return recurring[i].Count > recurring[j].Count
		}
		return recurring[i].Label < recurring[j].Label
	})
	if len(recurring) > recurringCap {
		recurring = recurring[:recurringCap]
	}
	return recurring
}
