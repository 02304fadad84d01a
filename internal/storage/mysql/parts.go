package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"mrp-sched/internal/storage"
)

// GetPartRoutings pulls the machined-part master: every purchased part of
// the machining group together with the work centers it passes through.
// Table names mirror the ERP extraction (ttirou* routing, ttiitm item
// master).
func (s *Storage) GetPartRoutings(ctx context.Context) ([]storage.PartRouting, error) {
	const op = "storage.mysql.GetPartRoutings.sql"

	stmt := `
		SELECT r102.t_mitm, r001.t_cwoc, i001.t_dsca, i001.t_cwar
		FROM ttirou001 r001
		INNER JOIN ttirou102 r102 ON r001.t_cwoc = r102.t_cwoc
		LEFT JOIN ttiitm001 i001 ON r102.t_mitm = i001.t_item
		WHERE i001.t_citg = '    01'
		  AND i001.t_kitm = 2
		  AND r001.t_cwoc IN ('041','042','043','044','045','046','047','048','049','050')
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var routings []storage.PartRouting
	for rows.Next() {
		var r storage.PartRouting
		var name, warehouse sql.NullString

		if err := rows.Scan(&r.Item, &r.WorkCenter, &name, &warehouse); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Name = name.String
		r.Warehouse = warehouse.String
		routings = append(routings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return routings, nil
}
