package ingest

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"mrp-sched/internal/storage"
)

// The assembly departments hand their schedules over as workbooks with one
// row per planned build. Sheet layouts drift, so the part and start-date
// columns are found by header name rather than position.
var (
	partHeaders = []string{"PLU", "機種"}
	dateHeaders = []string{"組立開始", "組立開始日", "Assembly Start Date"}
)

// ImportWindowDays bounds how far ahead workbook rows are taken.
const ImportWindowDays = 28

// ImportWorkbook scans every sheet of an assembly-schedule workbook and
// counts planned builds per (year-month, part, day-of-month) inside
// [today, today+ImportWindowDays]. Sheets without a recognizable header and
// rows without a parsable date are skipped, never fatal.
func ImportWorkbook(r io.Reader, today time.Time) ([]storage.ScheduleCount, error) {
	const op = "ingest.ImportWorkbook"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, ImportWindowDays)

	type cellKey struct {
		yearMonth string
		item      string
		day       int
	}
	counts := make(map[cellKey]int)

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: sheet %s: %w", op, sheet, err)
		}

		headerIdx, partCol, dateCol := findHeader(rows)
		if headerIdx < 0 {
			continue
		}

		for _, row := range rows[headerIdx+1:] {
			if partCol >= len(row) || dateCol >= len(row) {
				continue
			}
			item := strings.TrimSpace(row[partCol])
			if item == "" {
				continue
			}
			d, ok := parseWorkbookDate(row[dateCol])
			if !ok || d.Before(today) || d.After(end) {
				continue
			}
			counts[cellKey{d.Format("2006/01"), item, d.Day()}]++
		}
	}

	out := make([]storage.ScheduleCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, storage.ScheduleCount{
			YearMonth: k.yearMonth,
			Item:      k.item,
			Day:       k.day,
			Count:     n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.YearMonth != b.YearMonth {
			return a.YearMonth < b.YearMonth
		}
		if a.Item != b.Item {
			return a.Item < b.Item
		}
		return a.Day < b.Day
	})
	return out, nil
}

// findHeader locates the first row carrying both a part column and an
// assembly-start-date column. Returns -1 when the sheet has neither.
func findHeader(rows [][]string) (headerIdx, partCol, dateCol int) {
	for idx, row := range rows {
		part := findColumn(row, partHeaders)
		date := findColumn(row, dateHeaders)
		if part >= 0 && date >= 0 {
			return idx, part, date
		}
	}
	return -1, -1, -1
}

func findColumn(row []string, names []string) int {
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		for _, name := range names {
			if cell == name {
				return i
			}
		}
	}
	return -1
}

var workbookDateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006/1/2",
	"01-02-06", "1/2/06", "01/02/2006",
	"2006-01-02 15:04:05",
}

func parseWorkbookDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range workbookDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
