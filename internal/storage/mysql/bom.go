package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"mrp-sched/internal/storage"
)

// GetBOMLines pulls the flat parent→child BOM master. Quantities that do
// not scan as numbers come back as zero lines rather than failing the run.
func (s *Storage) GetBOMLines(ctx context.Context) ([]storage.BOMLine, error) {
	const op = "storage.mysql.GetBOMLines.sql"

	stmt := `SELECT item, s_item, bom_value FROM bom_master`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var lines []storage.BOMLine
	for rows.Next() {
		var l storage.BOMLine
		var perUnit sql.NullFloat64

		if err := rows.Scan(&l.Parent, &l.Child, &perUnit); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		l.PerUnit = perUnit.Float64
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lines, nil
}
