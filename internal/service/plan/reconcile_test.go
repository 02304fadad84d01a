package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mrp-sched/internal/storage"
)

func TestReconcileStartable_Basic(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", OrderedQty: 60, DeliveredQty: 10},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "10", PONumber: "PO-1", ReleaseNo: "1", OrderedQty: 30},
	}
	receipts := []storage.ReceiptLine{
		{OrderNo: 1001, PONumber: "PO-1", ReleaseNo: "1", DeliveredQty: 10},
	}

	startable, backlog := ReconcileStartable(orders, purchases, receipts)

	// A=50, B=30, C=10 -> 50 - (30-10) = 30.
	assert.Equal(t, 30.0, startable.Get("C1"))
	assert.Equal(t, 50.0, backlog.Get("C1"))
}

func TestReconcileStartable_ReceiptFanOutDoesNotInflate(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", OrderedQty: 50, DeliveredQty: 0},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "10", PONumber: "PO-1", ReleaseNo: "1", OrderedQty: 30},
	}
	// Three partial receipts against the same purchase line. B must count
	// the ordered 30 once, C the delivered total.
	receipts := []storage.ReceiptLine{
		{OrderNo: 1001, PONumber: "PO-1", ReleaseNo: "1", DeliveredQty: 5},
		{OrderNo: 1001, PONumber: "PO-1", ReleaseNo: "1", DeliveredQty: 5},
		{OrderNo: 1001, PONumber: "PO-1", ReleaseNo: "1", DeliveredQty: 10},
	}

	startable, _ := ReconcileStartable(orders, purchases, receipts)

	// A=50, B=30, C=20 -> 40.
	assert.Equal(t, 40.0, startable.Get("C1"))
}

func TestReconcileStartable_LineKeyVariantsJoin(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10.0", Item: "C1", OrderedQty: 50, DeliveredQty: 0},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "10 ", PONumber: "PO-1", ReleaseNo: "1", OrderedQty: 30},
	}

	startable, _ := ReconcileStartable(orders, purchases, nil)

	assert.Equal(t, 20.0, startable.Get("C1"))
}

func TestReconcileStartable_SentinelOnlyMatchesSentinel(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "bad", Item: "C1", OrderedQty: 50, DeliveredQty: 0},
		{OrderNo: 1001, LineNo: "10", Item: "C2", OrderedQty: 40, DeliveredQty: 0},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "???", PONumber: "PO-9", ReleaseNo: "1", OrderedQty: 30},
	}

	startable, _ := ReconcileStartable(orders, purchases, nil)

	// The unparsable order line matches the unparsable purchase line.
	assert.Equal(t, 20.0, startable.Get("C1"))
	// A clean line never crosses into the sentinel bucket.
	assert.Equal(t, 40.0, startable.Get("C2"))
}

func TestReconcileStartable_NoPurchaseMatch(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", OrderedQty: 50, DeliveredQty: 0},
	}

	startable, backlog := ReconcileStartable(orders, nil, nil)

	// Missing material tracking blocks nothing: startable = max(0, A).
	assert.Equal(t, 50.0, startable.Get("C1"))
	assert.Equal(t, 50.0, backlog.Get("C1"))
}

func TestReconcileStartable_NegativeBacklogCarried(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", OrderedQty: 10, DeliveredQty: 25},
	}

	startable, backlog := ReconcileStartable(orders, nil, nil)

	// Over-delivery keeps its sign in the backlog; only startable clamps.
	assert.Equal(t, -15.0, backlog.Get("C1"))
	assert.Equal(t, 0.0, startable.Get("C1"))
}

func TestReconcileStartable_ClampAtZero(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", OrderedQty: 10, DeliveredQty: 0},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "10", PONumber: "PO-1", ReleaseNo: "1", OrderedQty: 100},
	}

	startable, _ := ReconcileStartable(orders, purchases, nil)

	// A=10, B=100, C=0 -> raw -90, clamped.
	assert.Equal(t, 0.0, startable.Get("C1"))
}

func TestReconcileStartable_AggregatesAcrossOrders(t *testing.T) {
	orders := []storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1 ", OrderedQty: 30, DeliveredQty: 0},
		{OrderNo: 1002, LineNo: "10", Item: "C1", OrderedQty: 20, DeliveredQty: 5},
	}
	purchases := []storage.PurchaseLine{
		{OrderNo: 1001, LineNo: "10", PONumber: "PO-1", ReleaseNo: "1", OrderedQty: 10},
		{OrderNo: 1002, LineNo: "10", PONumber: "PO-2", ReleaseNo: "1", OrderedQty: 10},
	}
	receipts := []storage.ReceiptLine{
		{OrderNo: 1002, PONumber: "PO-2", ReleaseNo: "1", DeliveredQty: 10},
	}

	startable, backlog := ReconcileStartable(orders, purchases, receipts)

	// Item keys normalize to the same part. A=45, B=20, C=10 -> 35.
	assert.Equal(t, 45.0, backlog.Get("C1"))
	assert.Equal(t, 35.0, startable.Get("C1"))
}

func TestReconcileStartable_Empty(t *testing.T) {
	startable, backlog := ReconcileStartable(nil, nil, nil)

	assert.Empty(t, startable)
	assert.Empty(t, backlog)
}
