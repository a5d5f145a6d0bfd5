package handlers

import (
	"context"
	"net/http"

	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const defaultForecastMonths = 3

type ReportHandler struct {
	interactor *interactor.ReportInteractor
	logger     *zerolog.Logger
}

func NewReportHandler(interactor *interactor.ReportInteractor) *ReportHandler {
	logger := log.GetLogger()
	return &ReportHandler{interactor: interactor, logger: &logger}
}

func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dr, err := http2.QueryDateRange(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	year, err := http2.QueryInt(r, "year", 0)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	dashboard, err := h.interactor.GetDashboard(ctx, dr, year)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *ReportHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	months, err := http2.QueryInt(r, "months", defaultForecastMonths)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	forecast, err := h.interactor.GetCashFlowForecast(ctx, months)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

// ComparePerformance ranks the projects listed in ?ids= by ROI.
func (h *ReportHandler) ComparePerformance(w http.ResponseWriter, r *http.Request) {
	ids := http2.QueryList(r, "ids")
	if len(ids) == 0 {
		errors.HandleHTTPError(w, errors.NewValidationError("ids is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	comparison, err := h.interactor.CompareProjectPerformance(ctx, ids)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}
