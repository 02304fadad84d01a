package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"mrp-sched/internal/storage"
)

// GetStock pulls on-hand stock for the given items only, chunked to keep
// the IN list bounded. Pulling the whole inventory table is how the old
// extraction blew up.
func (s *Storage) GetStock(ctx context.Context, items []string) ([]storage.StockRow, error) {
	const op = "storage.mysql.GetStock.sql"

	var out []storage.StockRow
	for _, chunk := range chunkStrings(items) {
		stmt := fmt.Sprintf(
			`SELECT t_item, t_cwar, t_stoc FROM ttdinv001 WHERE t_item IN (%s)`,
			placeholders(len(chunk)),
		)
		args := make([]interface{}, len(chunk))
		for i, it := range chunk {
			args[i] = it
		}

		rows, err := s.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for rows.Next() {
			var r storage.StockRow
			var qty sql.NullFloat64
			if err := rows.Scan(&r.Item, &r.Warehouse, &qty); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			r.Qty = qty.Float64
			out = append(out, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows.Close()
	}

	return out, nil
}

// GetTheoryCounts pulls the shelf-theory counts.
func (s *Storage) GetTheoryCounts(ctx context.Context) ([]storage.InventoryRow, error) {
	const op = "storage.mysql.GetTheoryCounts.sql"
	return s.inventoryRows(ctx, op, `SELECT item, theory_cnt FROM tbl_item_theory`)
}

// GetExternalStock pulls the external-warehouse quantities.
func (s *Storage) GetExternalStock(ctx context.Context) ([]storage.InventoryRow, error) {
	const op = "storage.mysql.GetExternalStock.sql"
	return s.inventoryRows(ctx, op, `SELECT item, qty FROM external_warehouse_stock`)
}

func (s *Storage) inventoryRows(ctx context.Context, op, stmt string) ([]storage.InventoryRow, error) {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []storage.InventoryRow
	for rows.Next() {
		var r storage.InventoryRow
		var qty sql.NullFloat64
		if err := rows.Scan(&r.Item, &qty); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Qty = qty.Float64
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
