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
)

type ApprovalHandler struct {
	interactor *interactor.ApprovalInteractor
	logger     *zerolog.Logger
}

func NewApprovalHandler(interactor *interactor.ApprovalInteractor) *ApprovalHandler {
	logger := log.GetLogger()
	return &ApprovalHandler{interactor: interactor, logger: &logger}
}

// Approve answers 200 with applied=false when the transaction was already decided or is unknown.
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, http2.TransactionIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	applied, err := h.interactor.Approve(ctx, transactionID, r.Header.Get(http2.ApproverIDHeader))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to approve transaction")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ApprovalResultDTO{TransactionID: transactionID, Applied: applied})
}

func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, http2.TransactionIDParam)

	var dto dtos.RejectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	applied, err := h.interactor.Reject(ctx, transactionID, dto.Reason)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to reject transaction")
		errors.HandleHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ApprovalResultDTO{TransactionID: transactionID, Applied: applied})
}
