package plan

import (
	"time"

	"mrp-sched/internal/storage"
)

// Demand is the densified per-child daily requirement table: for every part
// that appears at all, Series holds exactly one value per horizon day,
// aligned with Dates.
type Demand struct {
	Dates  []time.Time
	Series map[string][]float64
}

// HorizonDates is every calendar day in [today, today+horizonDays].
func HorizonDates(today time.Time, horizonDays int) []time.Time {
	today = DateOnly(today)
	dates := make([]time.Time, 0, horizonDays+1)
	for i := 0; i <= horizonDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// Explode expands the parent production plan one BOM level down. Plan
// entries whose parent has no BOM lines generate no demand. Entries landing
// on the same (child, date) are summed, and every touched child is
// densified over the whole horizon.
func Explode(entries []storage.PlanEntry, bom []storage.BOMLine, today time.Time, horizonDays int) *Demand {
	lines := make(map[string][]storage.BOMLine, len(bom))
	for _, l := range bom {
		parent := NormalizeItem(l.Parent)
		lines[parent] = append(lines[parent], l)
	}

	dates := HorizonDates(today, horizonDays)
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	series := make(map[string][]float64)
	for _, e := range entries {
		di, ok := index[DateOnly(e.Date)]
		if !ok {
			continue
		}
		for _, l := range lines[NormalizeItem(e.Parent)] {
			child := NormalizeItem(l.Child)
			row, ok := series[child]
			if !ok {
				row = make([]float64, len(dates))
				series[child] = row
			}
			row[di] += l.PerUnit * e.Qty
		}
	}

	return &Demand{Dates: dates, Series: series}
}

// AlignDemand reindexes an externally produced requirements table (for
// example the pre-exploded CSV) onto the horizon. Out-of-horizon days are
// dropped, missing days become zero, and rows normalizing to the same part
// key are summed.
func AlignDemand(dates []time.Time, series map[string][]float64, today time.Time, horizonDays int) *Demand {
	horizon := HorizonDates(today, horizonDays)
	index := make(map[time.Time]int, len(horizon))
	for i, d := range horizon {
		index[d] = i
	}

	out := make(map[string][]float64, len(series))
	for item, daily := range series {
		key := NormalizeItem(item)
		row, ok := out[key]
		if !ok {
			row = make([]float64, len(horizon))
			out[key] = row
		}
		for i, q := range daily {
			if i >= len(dates) {
				break
			}
			if di, ok := index[DateOnly(dates[i])]; ok {
				row[di] += q
			}
		}
	}

	return &Demand{Dates: horizon, Series: out}
}
