package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// buildDataPoints regroups the daily series into a small, fixed number of
// display buckets whose width adapts to the total span of the window, so a
// chart stays readable whether the range is a week or several years.
//
// The breakpoint table is a compatibility contract, not arithmetic necessity:
// existing callers and tests depend on these exact widths and counts.
//
//	span <= 7 (mode 7d)  ->  7 buckets of 1 day
//	span <= 14           ->  7 buckets of 2 days
//	span <= 21           ->  7 buckets of 3 days
//	span <= 30           -> 10 buckets of 3 days
//	span <= 90           ->  9 buckets of 10 days
//	span <= 180          ->  9 buckets of 20 days
//	span <= 366          -> one bucket per distinct calendar month
//	span >  366          -> 12 buckets of ceil(span/12) days
func buildDataPoints(rangeMode string, start, end time.Time, daily []model.DailyPoint) []model.DataPoint {
	dayCount := int(end.Sub(start).Hours()/24) + 1
	if dayCount < 1 {
		dayCount = 1
	}

	bucketSize, bucketCount := 1, 7

	if rangeMode != model.Range7D {
		switch {
		case dayCount <= 14:
			bucketSize, bucketCount = 2, 7
		case dayCount <= 21:
			bucketSize, bucketCount = 3, 7
		case dayCount <= 30:
			bucketSize, bucketCount = 3, 10
		case dayCount <= 90:
			bucketSize, bucketCount = 10, 9
		case dayCount <= 180:
			bucketSize, bucketCount = 20, 9
		case dayCount <= 366:
			return monthBuckets(daily)
		default:
			bucketCount = 12
			bucketSize = (dayCount + bucketCount - 1) / bucketCount
		}
	}

	buckets := make([]model.DataPoint, 0, bucketCount)
	for i := 0; i < bucketCount; i++ {
		bStart := start.AddDate(0, 0, i*bucketSize)
		bEnd := bStart.AddDate(0, 0, bucketSize-1)

		var income, expense float64
		for _, d := range daily {
			day, err := dates.ParseISO(d.Date)
			if err != nil {
				continue
			}
			if !day.Before(bStart) && !day.After(bEnd) {
				income += d.Income
				expense += d.Expense
			}
		}

		buckets = append(buckets, model.DataPoint{
			Label:   fmt.Sprintf("%s – %s", dates.ShortDate(bStart), dates.ShortDate(bEnd)),
			Income:  round2(income),
			Expense: round2(expense),
			Savings: round2(income - expense),
		})
	}

	return buckets
}

// monthBuckets groups the daily series by true calendar month, one bucket per
// distinct "YYYY-MM" present, in chronological order.
func monthBuckets(daily []model.DailyPoint) []model.DataPoint {
	byMonth := make(map[string]accumulator)
	for _, d := range daily {
		mk := d.Date[:7]
		acc := byMonth[mk]
		acc.income += d.Income
		acc.expense += d.Expense
		byMonth[mk] = acc
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]model.DataPoint, len(keys))
	for i, mk := range keys {
		acc := byMonth[mk]
		buckets[i] = model.DataPoint{
			Label:   dates.MonthLabel(mk),
			Income:  round2(acc.income),
			Expense: round2(acc.expense),
			Savings: round2(acc.income - acc.expense),
		}
	}
	return buckets
}
