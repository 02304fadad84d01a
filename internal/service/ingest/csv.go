package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText makes externally produced CSV bytes readable regardless of how
// the producing tool saved them: UTF-8 with BOM, plain UTF-8, or CP932.
func decodeText(raw []byte) ([]byte, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		return raw[len(utf8BOM):], nil
	}
	if utf8.Valid(raw) {
		return raw, nil
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode shift-jis: %w", err)
	}
	return decoded, nil
}

// ReadRequirementsFile reads a pre-exploded daily-requirements CSV: first
// column is the part number, the remaining columns are named by date and
// hold that day's demand. Columns whose name does not parse as a date are
// skipped; unparsable cells count as zero.
func ReadRequirementsFile(path string) ([]time.Time, map[string][]float64, error) {
	const op = "ingest.ReadRequirementsFile"

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	dates, series, err := ReadRequirementsCSV(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return dates, series, nil
}

func ReadRequirementsCSV(raw []byte) ([]time.Time, map[string][]float64, error) {
	const op = "ingest.ReadRequirementsCSV"

	text, err := decodeText(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := csv.NewReader(bytes.NewReader(text)).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", op)
	}

	header := records[0]
	type dateCol struct {
		date time.Time
		col  int
	}
	var cols []dateCol
	for i := 1; i < len(header); i++ {
		if d, ok := parseDate(header[i]); ok {
			cols = append(cols, dateCol{d, i})
		}
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("%s: no date columns in header", op)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].date.Before(cols[j].date) })

	dates := make([]time.Time, len(cols))
	for i, c := range cols {
		dates[i] = c.date
	}

	series := make(map[string][]float64)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		item := strings.TrimSpace(rec[0])
		if item == "" {
			continue
		}
		row, ok := series[item]
		if !ok {
			row = make([]float64, len(cols))
			series[item] = row
		}
		for i, c := range cols {
			if c.col >= len(rec) {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(rec[c.col]), 64); err == nil {
				row[i] += q
			}
		}
	}

	return dates, series, nil
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006/1/2"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
