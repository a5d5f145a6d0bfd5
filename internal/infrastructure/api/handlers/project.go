package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct {
	interactor *interactor.ProjectInteractor
	logger     *zerolog.Logger
}

func NewProjectHandler(interactor *interactor.ProjectInteractor) *ProjectHandler {
	logger := log.GetLogger()
	return &ProjectHandler{interactor: interactor, logger: &logger}
}

func (h *ProjectHandler) GetFinance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	finance, err := h.interactor.GetProjectFinanceStatistics(ctx, chi.URLParam(r, http2.ProjectIDParam))
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, finance)
}

func (h *ProjectHandler) CheckBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.interactor.CheckProjectBudget(ctx, chi.URLParam(r, http2.ProjectIDParam))
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ProjectHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var dto dtos.BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}
	if err := dto.DecodeBudget(); err != nil {
		errors.HandleHTTPError(w, errors.NewValidationErrorf("invalid budget: %v", err))
		return
	}
	budget, err := decimal.NewFromString(dto.Budget)
	if err != nil {
		errors.HandleHTTPError(w, errors.NewValidationErrorf("invalid budget %q", dto.Budget))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	projectID := chi.URLParam(r, http2.ProjectIDParam)
	if err = h.interactor.UpdateProjectBudget(ctx, projectID, budget); err != nil {
		h.logger.Error().Err(err).Msg("failed to update project budget")
		errors.HandleHTTPError(w, err)
		return
	}

	result, err := h.interactor.CheckProjectBudget(ctx, projectID)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ProjectHandler) GetROI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	roi, err := h.interactor.CalculateROI(ctx, chi.URLParam(r, http2.ProjectIDParam))
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roi)
}
