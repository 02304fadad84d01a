package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"mrp-sched/internal/service/plan"
)

const dateFormat = "2006-01-02"

var fixedHeaders = []string{
	"item", "name", "work_centers", "category",
	"stock", "theory", "external",
	"shortage_date", "due_date", "shortage_qty",
	"backlog", "startable", "demand_total",
}

// WriteCSV renders the report as CSV, UTF-8 with BOM so the plant's Excel
// installs open it with the right encoding.
func WriteCSV(w io.Writer, rep *plan.Report) error {
	const op = "export.WriteCSV"

	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cw := csv.NewWriter(w)

	header := append([]string{}, fixedHeaders...)
	for _, d := range rep.Dates {
		header = append(header, d.Format(dateFormat))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, row := range rep.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec,
			row.Item,
			row.Name,
			row.WorkCenters,
			row.Category,
			formatQty(row.Stock),
			formatQty(row.Theory),
			formatQty(row.External),
			formatDate(row.ShortageDate),
			formatDate(row.DueDate),
			formatQty(row.ShortageQty),
			formatQty(row.Backlog),
			formatQty(row.Startable),
			formatQty(row.DemandTotal),
		)
		for _, q := range row.Daily {
			rec = append(rec, formatQty(q))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// BackupName is the timestamped file name the plant's archive folder uses,
// e.g. shortage_report_20250110_153000.csv.
func BackupName(generatedAt time.Time) string {
	return "shortage_report_" + generatedAt.Format("20060102_150405") + ".csv"
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateFormat)
}
