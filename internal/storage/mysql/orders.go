package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"mrp-sched/internal/storage"
)

// GetOpenOrders pulls manufacturing-order lines whose status is below the
// completion threshold. Line numbers are returned raw; canonicalization is
// the engine's job.
func (s *Storage) GetOpenOrders(ctx context.Context, statusBelow int) ([]storage.MfgOrder, error) {
	const op = "storage.mysql.GetOpenOrders.sql"

	stmt := `
		SELECT t_pdno, t_opro, t_mitm, t_osta, t_qrdr, t_qdlv
		FROM ttisfc001
		WHERE t_osta < ?
	`

	rows, err := s.db.QueryContext(ctx, stmt, statusBelow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []storage.MfgOrder
	for rows.Next() {
		var o storage.MfgOrder
		var lineNo sql.NullString
		var ordered, delivered sql.NullFloat64

		if err := rows.Scan(&o.OrderNo, &lineNo, &o.Item, &o.Status, &ordered, &delivered); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		o.LineNo = lineNo.String
		o.OrderedQty = ordered.Float64
		o.DeliveredQty = delivered.Float64
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

// GetPurchaseLines pulls raw-material purchase lines for the given
// manufacturing orders, chunked.
func (s *Storage) GetPurchaseLines(ctx context.Context, orderNos []int64) ([]storage.PurchaseLine, error) {
	const op = "storage.mysql.GetPurchaseLines.sql"

	var out []storage.PurchaseLine
	for _, chunk := range chunkInt64(orderNos) {
		stmt := fmt.Sprintf(
			`SELECT t_pdno, t_opno, t_pono, t_orno, t_oqua FROM ttdpur041 WHERE t_pdno IN (%s)`,
			placeholders(len(chunk)),
		)
		args := make([]interface{}, len(chunk))
		for i, no := range chunk {
			args[i] = no
		}

		rows, err := s.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for rows.Next() {
			var p storage.PurchaseLine
			var lineNo sql.NullString
			var ordered sql.NullFloat64
			if err := rows.Scan(&p.OrderNo, &lineNo, &p.PONumber, &p.ReleaseNo, &ordered); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			p.LineNo = lineNo.String
			p.OrderedQty = ordered.Float64
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows.Close()
	}

	return out, nil
}

// GetReceiptLines pulls material receipts for the given manufacturing
// orders, chunked. Partial deliveries arrive as separate rows; summing them
// is the engine's job.
func (s *Storage) GetReceiptLines(ctx context.Context, orderNos []int64) ([]storage.ReceiptLine, error) {
	const op = "storage.mysql.GetReceiptLines.sql"

	var out []storage.ReceiptLine
	for _, chunk := range chunkInt64(orderNos) {
		stmt := fmt.Sprintf(
			`SELECT t_pdno, t_pono, t_orno, t_dqua FROM ttdpur045 WHERE t_pdno IN (%s)`,
			placeholders(len(chunk)),
		)
		args := make([]interface{}, len(chunk))
		for i, no := range chunk {
			args[i] = no
		}

		rows, err := s.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for rows.Next() {
			var r storage.ReceiptLine
			var delivered sql.NullFloat64
			if err := rows.Scan(&r.OrderNo, &r.PONumber, &r.ReleaseNo, &delivered); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			r.DeliveredQty = delivered.Float64
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
