package run

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"mrp-sched/internal/service/plan"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context) (*plan.Report, error)
}

type Resp struct {
	Rows        int    `json:"rows"`
	HorizonDays int    `json:"horizon_days"`
	GeneratedAt string `json:"generated_at"`
}

// RunPlan triggers a full shortage computation and returns a summary.
func RunPlan(log *slog.Logger, svc ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.RunPlan"

		rep, err := svc.BuildReport(r.Context())
		if err != nil {
			log.Error("failed to build shortage report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("shortage report built",
			slog.Int("rows", len(rep.Rows)),
			slog.Int("horizon_days", len(rep.Dates)-1),
		)

		render.JSON(w, r, Resp{
			Rows:        len(rep.Rows),
			HorizonDays: len(rep.Dates) - 1,
			GeneratedAt: rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
