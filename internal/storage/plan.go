package storage

import "time"

// PlanEntry is one day's planned build quantity for a parent part, already
// melted out of the day-of-month schedule columns at the extraction layer.
type PlanEntry struct {
	Parent string    `json:"parent"`
	Date   time.Time `json:"date"`
	Qty    float64   `json:"qty"`
}

// BOMLine is a flat, single-level bill-of-materials row: building one unit
// of Parent consumes PerUnit units of Child.
type BOMLine struct {
	Parent  string  `json:"parent"`
	Child   string  `json:"child"`
	PerUnit float64 `json:"per_unit"`
}

// PartRouting is one (part, work center) row from the item master. One part
// usually appears on several work centers; grouping happens in the engine.
type PartRouting struct {
	Item       string `json:"item"`
	WorkCenter string `json:"work_center"`
	Name       string `json:"name"`
	Warehouse  string `json:"warehouse"`
}

// StockRow is an on-hand quantity per (item, warehouse).
type StockRow struct {
	Item      string  `json:"item"`
	Warehouse string  `json:"warehouse"`
	Qty       float64 `json:"qty"`
}

// InventoryRow is a per-item quantity from the shelf-theory or
// external-warehouse source.
type InventoryRow struct {
	Item string  `json:"item"`
	Qty  float64 `json:"qty"`
}

// ScheduleCount is one ingested workbook cell: Count planned builds of Item
// on day Day of YearMonth ("2025/10").
type ScheduleCount struct {
	YearMonth string `json:"year_month"`
	Item      string `json:"item"`
	Day       int    `json:"day"`
	Count     int    `json:"count"`
}
