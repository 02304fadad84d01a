package plan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mrp-sched/internal/service/ingest"
	"mrp-sched/internal/storage"
)

// PlanStorage is everything the engine pulls before the pass starts. All
// inputs are full snapshots; the computation itself never touches I/O.
type PlanStorage interface {
	GetPartRoutings(ctx context.Context) ([]storage.PartRouting, error)
	GetPlanEntries(ctx context.Context, from, to time.Time) ([]storage.PlanEntry, error)
	GetBOMLines(ctx context.Context) ([]storage.BOMLine, error)
	GetStock(ctx context.Context, items []string) ([]storage.StockRow, error)
	GetTheoryCounts(ctx context.Context) ([]storage.InventoryRow, error)
	GetExternalStock(ctx context.Context) ([]storage.InventoryRow, error)
	GetWorkdays(ctx context.Context) ([]time.Time, error)
	GetOpenOrders(ctx context.Context, statusBelow int) ([]storage.MfgOrder, error)
	GetPurchaseLines(ctx context.Context, orderNos []int64) ([]storage.PurchaseLine, error)
	GetReceiptLines(ctx context.Context, orderNos []int64) ([]storage.ReceiptLine, error)
}

type Options struct {
	HorizonDays              int
	LeadWorkdays             int
	OrderStatusOpenThreshold int
	TerminalStepCode         string
	// RequirementsCSV, when set, replaces BOM explosion with the
	// pre-exploded daily requirements file at that path.
	RequirementsCSV string
}

type Service struct {
	storage PlanStorage
	opts    Options
	now     func() time.Time
}

func NewService(storage PlanStorage, opts Options) *Service {
	return &Service{storage: storage, opts: opts, now: time.Now}
}

// Report is the engine's sole artifact: the date header and one row per
// at-risk part.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Dates       []time.Time         `json:"dates"`
	Rows        []storage.ReportRow `json:"rows"`
}

// BuildReport loads all input snapshots, then runs the single deterministic
// pass: explode, net, reconcile, assemble. Snapshot loads run concurrently;
// a failure in any of them aborts the run before the core starts.
func (s *Service) BuildReport(ctx context.Context) (*Report, error) {
	const op = "service.plan.BuildReport"

	today := DateOnly(s.now())
	end := today.AddDate(0, 0, s.opts.HorizonDays)

	var (
		routings []storage.PartRouting
		entries  []storage.PlanEntry
		bom      []storage.BOMLine
		theory   []storage.InventoryRow
		external []storage.InventoryRow
		workdays []time.Time
		orders   []storage.MfgOrder
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		routings, err = s.storage.GetPartRoutings(gCtx)
		if err != nil {
			return fmt.Errorf("part routings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.storage.GetPlanEntries(gCtx, today, end)
		if err != nil {
			return fmt.Errorf("plan entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bom, err = s.storage.GetBOMLines(gCtx)
		if err != nil {
			return fmt.Errorf("bom lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		theory, err = s.storage.GetTheoryCounts(gCtx)
		if err != nil {
			return fmt.Errorf("theory counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		external, err = s.storage.GetExternalStock(gCtx)
		if err != nil {
			return fmt.Errorf("external stock: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		workdays, err = s.storage.GetWorkdays(gCtx)
		if err != nil {
			return fmt.Errorf("workdays: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.storage.GetOpenOrders(gCtx, s.opts.OrderStatusOpenThreshold)
		if err != nil {
			return fmt.Errorf("open orders: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	parts := BuildParts(routings)

	// Orders outside the machined-part master are other departments' work.
	open := orders[:0]
	for _, o := range orders {
		if _, ok := parts[NormalizeItem(o.Item)]; ok {
			open = append(open, o)
		}
	}
	orderNos := uniqueOrderNos(open)

	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, p.Item)
	}

	var (
		stock     []storage.StockRow
		purchases []storage.PurchaseLine
		receipts  []storage.ReceiptLine
	)
	g, gCtx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stock, err = s.storage.GetStock(gCtx, items)
		if err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		purchases, err = s.storage.GetPurchaseLines(gCtx, orderNos)
		if err != nil {
			return fmt.Errorf("purchase lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		receipts, err = s.storage.GetReceiptLines(gCtx, orderNos)
		if err != nil {
			return fmt.Errorf("receipt lines: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	demand, err := s.buildDemand(entries, bom, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	startable, backlog := ReconcileStartable(open, purchases, receipts)

	rows := AssembleReport(AssembleInput{
		Parts:        parts,
		Demand:       demand,
		Inventory:    BuildInventory(stock, theory, external),
		Startable:    startable,
		Backlog:      backlog,
		Calendar:     NewCalendar(workdays),
		Today:        today,
		LeadWorkdays: s.opts.LeadWorkdays,
		TerminalStep: s.opts.TerminalStepCode,
	})

	return &Report{GeneratedAt: s.now(), Dates: demand.Dates, Rows: rows}, nil
}

func (s *Service) buildDemand(entries []storage.PlanEntry, bom []storage.BOMLine, today time.Time) (*Demand, error) {
	if s.opts.RequirementsCSV == "" {
		return Explode(entries, bom, today, s.opts.HorizonDays), nil
	}
	dates, series, err := ingest.ReadRequirementsFile(s.opts.RequirementsCSV)
	if err != nil {
		return nil, fmt.Errorf("requirements csv: %w", err)
	}
	return AlignDemand(dates, series, today, s.opts.HorizonDays), nil
}

func uniqueOrderNos(orders []storage.MfgOrder) []int64 {
	seen := make(map[int64]struct{}, len(orders))
	nos := make([]int64, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.OrderNo]; ok {
			continue
		}
		seen[o.OrderNo] = struct{}{}
		nos = append(nos, o.OrderNo)
	}
	return nos
}
