package storage

import "time"

// ReportRow is one part of the final shortage table. Daily holds one demand
// value per horizon day, aligned with the report's date header.
type ReportRow struct {
	Item         string     `json:"item"`
	Name         string     `json:"name"`
	WorkCenters  string     `json:"work_centers"`
	Category     string     `json:"category"`
	Stock        float64    `json:"stock"`
	Theory       float64    `json:"theory"`
	External     float64    `json:"external"`
	ShortageDate *time.Time `json:"shortage_date"`
	DueDate      *time.Time `json:"due_date"`
	ShortageQty  float64    `json:"shortage_qty"`
	Backlog      float64    `json:"backlog"`
	Startable    float64    `json:"startable"`
	DemandTotal  float64    `json:"demand_total"`
	Daily        []float64  `json:"daily"`
}
