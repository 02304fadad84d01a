package storage

// MfgOrder is one open manufacturing-order line. LineNo is kept raw; the
// engine canonicalizes it before joining, because the same logical line
// shows up as 10, 10.0 or "10 " across the source systems.
type MfgOrder struct {
	OrderNo      int64   `json:"order_no"`
	LineNo       string  `json:"line_no"`
	Item         string  `json:"item"`
	Status       int     `json:"status"`
	OrderedQty   float64 `json:"ordered_qty"`
	DeliveredQty float64 `json:"delivered_qty"`
}

// PurchaseLine is a raw-material purchase-order line hanging off a
// manufacturing order line.
type PurchaseLine struct {
	OrderNo    int64   `json:"order_no"`
	LineNo     string  `json:"line_no"`
	PONumber   string  `json:"po_number"`
	ReleaseNo  string  `json:"release_no"`
	OrderedQty float64 `json:"ordered_qty"`
}

// ReceiptLine is one (possibly partial) material delivery against a
// purchase line. Several receipts may share the same (order, PO, release).
type ReceiptLine struct {
	OrderNo      int64   `json:"order_no"`
	PONumber     string  `json:"po_number"`
	ReleaseNo    string  `json:"release_no"`
	DeliveredQty float64 `json:"delivered_qty"`
}
