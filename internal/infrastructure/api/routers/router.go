package routers

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mufasadev/finance-analytics/internal/di"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/api/middlewares"
)

func NewRouter(container *di.Container) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/statistics", func(r chi.Router) {
			sh := container.StatisticsHandler
			r.Get("/", sh.GetStatistics)
			r.Get("/categories", sh.GetCategoryStatistics)
			r.Get("/monthly", sh.GetMonthlyStatistics)
		})

		r.Route("/transactions", func(r chi.Router) {
			th := container.TransactionHandler
			sh := container.StatisticsHandler
			r.Get("/", th.SearchTransactions)
			r.Post("/", th.CreateTransaction)
			r.Get("/top", sh.GetTopTransactions)
			r.Get("/recent", sh.GetRecentTransactions)
			r.Get("/anomalies", sh.GetAnomalies)
			r.Get("/next-code", th.NextCode)

			r.Route(fmt.Sprintf("/{%s}", http2.TransactionIDParam), func(r chi.Router) {
				r.Use(middlewares.TransactionIDValidationMiddleware)
				r.Get("/", th.GetTransaction)
				r.Put("/", th.UpdateTransaction)
				r.Delete("/", th.DeleteTransaction)

				ah := container.ApprovalHandler
				r.With(middlewares.ApproverValidationMiddleware).Post("/approve", ah.Approve)
				r.Post("/reject", ah.Reject)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/performance", container.ReportHandler.ComparePerformance)

			r.Route(fmt.Sprintf("/{%s}", http2.ProjectIDParam), func(r chi.Router) {
				r.Use(middlewares.ProjectIDValidationMiddleware)
				ph := container.ProjectHandler
				r.Get("/finance", ph.GetFinance)
				r.Get("/budget-check", ph.CheckBudget)
				r.Put("/budget", ph.UpdateBudget)
				r.Get("/roi", ph.GetROI)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			rh := container.ReportHandler
			r.Get("/dashboard", rh.GetDashboard)
			r.Get("/forecast", rh.GetForecast)
		})
	})

	return router
}
