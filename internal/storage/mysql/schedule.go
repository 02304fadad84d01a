package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mrp-sched/internal/storage"
)

const scheduleDays = 31

// GetPlanEntries melts the day-of-month schedule columns (d01..d31) into
// dated plan entries. This is the only place the day-as-column layout
// exists; everything downstream works on (date, qty) pairs. Cells with
// non-positive quantity, days that do not exist in their month, and dates
// outside [from, to] are dropped silently.
func (s *Storage) GetPlanEntries(ctx context.Context, from, to time.Time) ([]storage.PlanEntry, error) {
	const op = "storage.mysql.GetPlanEntries.sql"

	cols := make([]string, scheduleDays)
	for i := range cols {
		cols[i] = fmt.Sprintf("d%02d", i+1)
	}
	stmt := fmt.Sprintf(
		`SELECT ym, plu, %s FROM trn_assy_schedule WHERE ym IS NOT NULL`,
		strings.Join(cols, ", "),
	)

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []storage.PlanEntry
	for rows.Next() {
		var yearMonth, item string
		qty := make([]sql.NullFloat64, scheduleDays)

		dest := make([]interface{}, 0, scheduleDays+2)
		dest = append(dest, &yearMonth, &item)
		for i := range qty {
			dest = append(dest, &qty[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for day := 1; day <= scheduleDays; day++ {
			q := qty[day-1]
			if !q.Valid || q.Float64 <= 0 {
				continue
			}
			d, ok := ymDayToDate(yearMonth, day)
			if !ok || d.Before(from) || d.After(to) {
				continue
			}
			entries = append(entries, storage.PlanEntry{Parent: item, Date: d, Qty: q.Float64})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

// UpsertSchedule writes ingested workbook counts into the schedule table,
// one day column per count. Day numbers come validated from the importer,
// so building the column name is safe.
func (s *Storage) UpsertSchedule(ctx context.Context, counts []storage.ScheduleCount) error {
	const op = "storage.mysql.UpsertSchedule.sql"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	for _, c := range counts {
		if c.Day < 1 || c.Day > scheduleDays {
			continue
		}
		col := fmt.Sprintf("d%02d", c.Day)
		stmt := fmt.Sprintf(`
			INSERT INTO trn_assy_schedule (ym, plu, %s)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE %s = VALUES(%s)
		`, col, col, col)
		if _, err := tx.ExecContext(ctx, stmt, c.YearMonth, c.Item, c.Count); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ymDayToDate turns ("2025/10", 1) into 2025-10-01. Day numbers past the
// month's last day ("Feb 31") report !ok instead of rolling over.
func ymDayToDate(yearMonth string, day int) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(yearMonth), "/")
	if len(parts) != 2 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
