package plan

import (
	"sort"
	"strings"
	"time"

	"mrp-sched/internal/storage"
)

// CategoryPaint tags parts whose routing ends on the paint work center.
const CategoryPaint = "paint"

// Part is the item master aggregated to one row per normalized key.
type Part struct {
	Key         string
	Item        string
	Name        string
	Warehouse   string
	WorkCenters []string
}

// BuildParts groups routing rows by part. The first item/name/warehouse
// wins; work centers are collected sorted and unique.
func BuildParts(rows []storage.PartRouting) map[string]*Part {
	parts := make(map[string]*Part)
	for _, r := range rows {
		key := NormalizeItem(r.Item)
		if key == "" {
			continue
		}
		p, ok := parts[key]
		if !ok {
			p = &Part{Key: key, Item: r.Item, Name: r.Name, Warehouse: r.Warehouse}
			parts[key] = p
		}
		found := false
		for _, wc := range p.WorkCenters {
			if wc == r.WorkCenter {
				found = true
				break
			}
		}
		if !found {
			p.WorkCenters = append(p.WorkCenters, r.WorkCenter)
		}
	}
	for _, p := range parts {
		sort.Strings(p.WorkCenters)
	}
	return parts
}

type AssembleInput struct {
	Parts        map[string]*Part
	Demand       *Demand
	Inventory    *Inventory
	Startable    QtyMap
	Backlog      QtyMap
	Calendar     *Calendar
	Today        time.Time
	LeadWorkdays int
	TerminalStep string
}

// AssembleReport joins the per-part results into the final table. Parts
// whose horizon never goes short (shortage qty >= 0) are dropped; the rest
// get a due date back-scheduled from the shortage date and clamped forward
// to today. Rows sort by shortage date ascending, then part number.
func AssembleReport(in AssembleInput) []storage.ReportRow {
	today := DateOnly(in.Today)
	zeros := make([]float64, len(in.Demand.Dates))

	rows := make([]storage.ReportRow, 0, len(in.Parts))
	for key, p := range in.Parts {
		daily := in.Demand.Series[key]
		if daily == nil {
			daily = zeros
		}

		available := in.Inventory.Available(key, p.Warehouse)
		shortageDate, shortageQty := DetectShortage(available, in.Demand.Dates, daily)
		if shortageQty >= 0 {
			continue
		}

		var dueDate *time.Time
		if shortageDate != nil {
			due := in.Calendar.BackOffset(*shortageDate, in.LeadWorkdays)
			if due.Before(today) {
				due = today
			}
			dueDate = &due
		}

		var total float64
		for _, q := range daily {
			total += q
		}

		category := ""
		for _, wc := range p.WorkCenters {
			if wc == in.TerminalStep {
				category = CategoryPaint
				break
			}
		}

		rows = append(rows, storage.ReportRow{
			Item:         p.Item,
			Name:         p.Name,
			WorkCenters:  strings.Join(p.WorkCenters, ","),
			Category:     category,
			Stock:        in.Inventory.StockFor(key, p.Warehouse),
			Theory:       in.Inventory.TheoryFor(key),
			External:     in.Inventory.ExternalFor(key),
			ShortageDate: shortageDate,
			DueDate:      dueDate,
			ShortageQty:  shortageQty,
			Backlog:      in.Backlog.Get(key),
			Startable:    in.Startable.Get(key),
			DemandTotal:  total,
			Daily:        daily,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].ShortageDate, rows[j].ShortageDate
		switch {
		case di == nil && dj == nil:
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.Before(*dj)
		}
		return rows[i].Item < rows[j].Item
	})

	return rows
}
