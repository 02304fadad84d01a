package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getplan "mrp-sched/http-server/plan/get"
	runplan "mrp-sched/http-server/plan/run"
	uploadschedule "mrp-sched/http-server/schedule/upload"
	"mrp-sched/internal/config"
	"mrp-sched/internal/middleware/auth"
	"mrp-sched/internal/service/plan"
	"mrp-sched/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, service *plan.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/api/plan/run", runplan.RunPlan(log, service))

	router.Get("/api/plan/report", getplan.GetReport(log, service))
	router.Get("/api/plan/report/csv", getplan.GetReportCSV(log, service))
	router.Get("/api/plan/report/excel", getplan.GetReportExcel(log, service))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/schedule/upload", uploadschedule.UploadSchedule(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
