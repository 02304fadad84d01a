package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"mrp-sched/internal/service/export"
	"mrp-sched/internal/service/plan"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context) (*plan.Report, error)
}

// GetReport returns the full shortage table as JSON.
func GetReport(log *slog.Logger, svc ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.GetReport"

		rep, err := svc.BuildReport(r.Context())
		if err != nil {
			log.Error("failed to build shortage report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rep)
	}
}

// GetReportCSV streams the shortage table as a CSV download.
func GetReportCSV(log *slog.Logger, svc ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.GetReportCSV"

		rep, err := svc.BuildReport(r.Context())
		if err != nil {
			log.Error("failed to build shortage report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="shortage_report.csv"`)
		if err := export.WriteCSV(w, rep); err != nil {
			log.Error("failed to write csv", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

// GetReportExcel streams the shortage table as an xlsx download.
func GetReportExcel(log *slog.Logger, svc ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.GetReportExcel"

		rep, err := svc.BuildReport(r.Context())
		if err != nil {
			log.Error("failed to build shortage report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		data, err := export.BuildExcel(rep)
		if err != nil {
			log.Error("failed to build excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="shortage_report.xlsx"`)
		w.Write(data)
	}
}
