package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

const (
	spikeThreshold = 2.0
	spikesCap      = 5
)

// detectSpikes flags calendar days whose expense total exceeds two population
// standard deviations above the in-range daily expense mean. A flat series
// (stdev 0) yields z=0 for every day and therefore no spikes. This is a fixed
// threshold over the whole window: one very large historical day dilutes
// sensitivity for all days equally.
func detectSpikes(daily []model.DailyPoint) []model.SpikeItem {
	if len(daily) < 2 {
		return []model.SpikeItem{}
	}

	expenses := make([]float64, len(daily))
	for i, d := range daily {
		expenses[i] = d.Expense
	}

	mean := stat.Mean(expenses, nil)
	std := stat.PopStdDev(expenses, nil)

	spikes := make([]model.SpikeItem, 0)
	for _, d := range daily {
		z := 0.0
		if std > 0 {
			z = (d.Expense - mean) / std
		}
		if z > spikeThreshold {
			spikes = append(spikes, model.SpikeItem{Date: d.Date, Expense: d.Expense, Z: z})
		}
	}

	sort.Slice(spikes, func(i, j int) bool {
		if spikes[i].Z != spikes[j].Z {
			return spikes[i].Z > spikes[j].Z
		}
		return spikes[i].Date < spikes[j].Date
	})
	if len(spikes) > spikesCap {
		spikes = spikes[:spikesCap]
	}
	return spikes
}
