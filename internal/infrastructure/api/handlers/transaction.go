package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const defaultSearchLimit = 100

type TransactionHandler struct {
	interactor *interactor.TransactionInteractor
	logger     *zerolog.Logger
}

func NewTransactionHandler(interactor *interactor.TransactionInteractor) *TransactionHandler {
	logger := log.GetLogger()
	return &TransactionHandler{interactor: interactor, logger: &logger}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transaction, err := h.interactor.CreateTransaction(ctx, dto)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create transaction")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transaction)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transaction, err := h.interactor.GetTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transaction)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transaction, err := h.interactor.UpdateTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam), dto)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to update transaction")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transaction)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.interactor.DeleteTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam)); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete transaction")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilter(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	transactions, err := h.interactor.SearchTransactions(ctx, filter)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) NextCode(w http.ResponseWriter, r *http.Request) {
	typ, err := http2.QueryType(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	if typ == nil {
		errors.HandleHTTPError(w, errors.NewValidationError("type is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	code, err := h.interactor.GenerateTransactionCode(ctx, *typ)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.CodeDTO{Code: code})
}

func (h *TransactionHandler) decodeTransaction(w http.ResponseWriter, r *http.Request) (*dtos.TransactionDTO, bool) {
	var dto dtos.TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return nil, false
	}
	if err := dto.DecodeAmount(); err != nil {
		h.logger.Error().Err(err).Msg("failed to decode amount")
		errors.HandleHTTPError(w, errors.NewValidationErrorf("invalid amount: %v", err))
		return nil, false
	}
	return &dto, true
}

func searchFilter(r *http.Request) (repositories.TransactionFilter, error) {
	filter := repositories.TransactionFilter{
		ProjectID:  r.URL.Query().Get("project"),
		EmployeeID: r.URL.Query().Get("employee"),
		CustomerID: r.URL.Query().Get("customer"),
		Category:   r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("q"),
	}

	var err error
	if filter.DateFrom, err = http2.QueryDate(r, "from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = http2.QueryDate(r, "to"); err != nil {
		return filter, err
	}

	var typ *models.TransactionType
	if typ, err = http2.QueryType(r); err != nil {
		return filter, err
	}
	if typ != nil {
		filter.Type = *typ
	}

	if filter.Statuses, err = http2.QueryStatuses(r); err != nil {
		return filter, err
	}
	if filter.Limit, err = http2.QueryInt(r, "limit", defaultSearchLimit); err != nil {
		return filter, err
	}
	return filter, nil
}
