package mysql

import (
	"context"
	"fmt"
	"time"
)

// GetWorkdays pulls the plant calendar's working days, ascending. Only MPS
// days count as operating days for back-scheduling.
func (s *Storage) GetWorkdays(ctx context.Context) ([]time.Time, error) {
	const op = "storage.mysql.GetWorkdays.sql"

	stmt := `SELECT t_date FROM ttirou400 WHERE t_ctod = 'MPS' ORDER BY t_date`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}
