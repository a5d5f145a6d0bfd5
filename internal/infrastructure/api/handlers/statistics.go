package handlers

import (
	"context"
	"net/http"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const (
	defaultTopTransactions = 10
	defaultRecentDays      = 7
	defaultRecentLimit     = 10
	defaultAnomalyDays     = 30
)

type StatisticsHandler struct {
	interactor *interactor.StatisticsInteractor
	anomalies  *interactor.AnomalyInteractor
	logger     *zerolog.Logger
}

func NewStatisticsHandler(interactor *interactor.StatisticsInteractor, anomalies *interactor.AnomalyInteractor) *StatisticsHandler {
	logger := log.GetLogger()
	return &StatisticsHandler{interactor: interactor, anomalies: anomalies, logger: &logger}
}

func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	dr, err := http2.QueryDateRange(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.interactor.GetStatistics(ctx, dr)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get statistics")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatisticsHandler) GetCategoryStatistics(w http.ResponseWriter, r *http.Request) {
	typ, err := http2.QueryType(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	if typ == nil {
		errors.HandleHTTPError(w, errors.NewValidationError("type is required"))
		return
	}
	dr, err := http2.QueryDateRange(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := h.interactor.GetCategoryStatistics(ctx, *typ, dr)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get category statistics")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *StatisticsHandler) GetMonthlyStatistics(w http.ResponseWriter, r *http.Request) {
	year, err := http2.QueryInt(r, "year", 0)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	if year == 0 {
		errors.HandleHTTPError(w, errors.NewValidationError("year is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	monthly, err := h.interactor.GetMonthlyStatistics(ctx, year)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get monthly statistics")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, monthly)
}

func (h *StatisticsHandler) GetTopTransactions(w http.ResponseWriter, r *http.Request) {
	n, err := http2.QueryInt(r, "n", defaultTopTransactions)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	typ, err := http2.QueryType(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	top, err := h.interactor.GetTopTransactions(ctx, n, typ)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, top)
}

func (h *StatisticsHandler) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	days, err := http2.QueryInt(r, "days", defaultRecentDays)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	limit, err := http2.QueryInt(r, "limit", defaultRecentLimit)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	recent, err := h.interactor.GetRecentTransactions(ctx, days, limit)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recent)
}

func (h *StatisticsHandler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	days, err := http2.QueryInt(r, "days", defaultAnomalyDays)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	anomalies, err := h.anomalies.DetectAnomalies(ctx, days)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	if anomalies == nil {
		anomalies = []models.AnomalyResult{}
	}
	writeJSON(w, http.StatusOK, anomalies)
}
