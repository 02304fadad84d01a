package plan

import "mrp-sched/internal/storage"

type orderLineKey struct {
	orderNo int64
	lineKey string
}

type purchaseKey struct {
	orderNo   int64
	poNumber  string
	releaseNo string
}

// ReconcileStartable nets open manufacturing backlog against raw-material
// purchase backlog, per part:
//
//	A = Σ backlog over the part's open order lines
//	B = Σ ordered qty over matched purchase lines, deduplicated on
//	    (order, PO, release) first
//	C = Σ delivered qty over receipts, pre-summed per (order, PO, release)
//	startable = max(0, A - (B - C))
//
// Receipts must be pre-aggregated and B must be summed post-dedup: a
// purchase line matching several receipt rows would otherwise count its
// ordered quantity once per receipt. Order lines and purchase lines join on
// the canonicalized line-number key. A part with no purchase match at all
// keeps startable = max(0, A) — missing material tracking blocks nothing.
//
// Backlog may be negative on over-delivered lines; it is carried as-is into
// A and only the final result is clamped.
func ReconcileStartable(orders []storage.MfgOrder, purchases []storage.PurchaseLine, receipts []storage.ReceiptLine) (startable, backlog QtyMap) {
	delivered := make(map[purchaseKey]float64, len(receipts))
	for _, r := range receipts {
		delivered[purchaseKey{r.OrderNo, r.PONumber, r.ReleaseNo}] += r.DeliveredQty
	}

	byLine := make(map[orderLineKey][]storage.PurchaseLine, len(purchases))
	for _, p := range purchases {
		k := orderLineKey{p.OrderNo, IntKey(p.LineNo)}
		byLine[k] = append(byLine[k], p)
	}

	type tally struct {
		a, b, c float64
		seen    map[purchaseKey]struct{}
	}
	parts := make(map[string]*tally)

	for _, o := range orders {
		key := NormalizeItem(o.Item)
		t, ok := parts[key]
		if !ok {
			t = &tally{seen: make(map[purchaseKey]struct{})}
			parts[key] = t
		}
		t.a += o.OrderedQty - o.DeliveredQty

		for _, p := range byLine[orderLineKey{o.OrderNo, IntKey(o.LineNo)}] {
			pk := purchaseKey{p.OrderNo, p.PONumber, p.ReleaseNo}
			if _, dup := t.seen[pk]; dup {
				continue
			}
			t.seen[pk] = struct{}{}
			t.b += p.OrderedQty
			t.c += delivered[pk]
		}
	}

	startable = make(QtyMap, len(parts))
	backlog = make(QtyMap, len(parts))
	for key, t := range parts {
		backlog[key] = t.a
		s := t.a - (t.b - t.c)
		if s < 0 {
			s = 0
		}
		startable[key] = s
	}
	return startable, backlog
}
