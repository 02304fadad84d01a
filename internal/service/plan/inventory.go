package plan

import "mrp-sched/internal/storage"

type stockKey struct {
	item      string
	warehouse string
}

// Inventory merges the three supply sources. On-hand stock is keyed by
// (item, warehouse) because the same item number may sit in several stores;
// the other two sources are keyed by item alone.
type Inventory struct {
	stock    map[stockKey]float64
	theory   QtyMap
	external QtyMap
}

func BuildInventory(stock []storage.StockRow, theory, external []storage.InventoryRow) *Inventory {
	inv := &Inventory{
		stock:    make(map[stockKey]float64, len(stock)),
		theory:   make(QtyMap, len(theory)),
		external: make(QtyMap, len(external)),
	}
	for _, r := range stock {
		inv.stock[stockKey{NormalizeItem(r.Item), r.Warehouse}] += r.Qty
	}
	for _, r := range theory {
		inv.theory.Add(NormalizeItem(r.Item), r.Qty)
	}
	for _, r := range external {
		inv.external.Add(NormalizeItem(r.Item), r.Qty)
	}
	return inv
}

func (inv *Inventory) StockFor(key, warehouse string) float64 {
	return inv.stock[stockKey{key, warehouse}]
}

func (inv *Inventory) TheoryFor(key string) float64 {
	return inv.theory.Get(key)
}

func (inv *Inventory) ExternalFor(key string) float64 {
	return inv.external.Get(key)
}

// Available is the supply total a part's demand is netted against.
func (inv *Inventory) Available(key, warehouse string) float64 {
	return inv.StockFor(key, warehouse) + inv.TheoryFor(key) + inv.ExternalFor(key)
}
