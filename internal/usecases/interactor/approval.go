package interactor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const RejectionNotePrefix = "Lý do từ chối: "

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks -source=approval.go DecisionPublisher

// DecisionPublisher announces committed approval decisions to other systems.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, decision dtos.TransactionDecision) error
}

type NopDecisionPublisher struct{}

func (NopDecisionPublisher) PublishDecision(context.Context, dtos.TransactionDecision) error {
	return nil
}

type ApprovalInteractor struct {
	transactionRepository repositories.TransactionRepository
	publisher             DecisionPublisher
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewApprovalInteractor(transactionRepository repositories.TransactionRepository, publisher DecisionPublisher) *ApprovalInteractor {
	l := log.GetLogger()
	if publisher == nil {
		publisher = NopDecisionPublisher{}
	}
	return &ApprovalInteractor{
		transactionRepository: transactionRepository,
		publisher:             publisher,
		logger:                &l,
		now:                   time.Now,
	}
}

// Approve moves a pending transaction to Approved. It returns false, without error,
// when the transaction does not exist or has already been decided.
func (i *ApprovalInteractor) Approve(ctx context.Context, transactionID, approverID string) (bool, error) {
	if transactionID == "" {
		return false, apperrors.NewValidationError(apperrors.ErrTransactionIDRequired)
	}
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return false, apperrors.NewValidationError(apperrors.ErrApproverIDRequired)
	}
	if err := checkLength("approver id", approverID, MaxActorLength); err != nil {
		return false, err
	}

	at := i.now()
	applied, err := i.transactionRepository.TransitionFromPending(ctx, repositories.StatusTransition{
		TransactionID: transactionID,
		To:            models.TransactionStatusApproved,
		ApprovedBy:    approverID,
		At:            at,
	})
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to approve transaction")
		return false, err
	}
	if !applied {
		i.logger.Info().Str("transaction_id", transactionID).Msg("transaction not pending, approval skipped")
		return false, nil
	}

	i.logger.Info().
		Str("transaction_id", transactionID).
		Str("approved_by", approverID).
		Msg("transaction approved")
	i.publish(ctx, dtos.TransactionDecision{
		TransactionID: transactionID,
		Status:        models.TransactionStatusApproved,
		ApprovedBy:    approverID,
		DecidedAt:     at,
	})
	return true, nil
}

// Reject moves a pending transaction to Rejected and appends the reason to its description.
func (i *ApprovalInteractor) Reject(ctx context.Context, transactionID, reason string) (bool, error) {
	if transactionID == "" {
		return false, apperrors.NewValidationError(apperrors.ErrTransactionIDRequired)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false, apperrors.NewValidationError(apperrors.ErrRejectReasonRequired)
	}

	applied, err := i.transactionRepository.TransitionFromPending(ctx, repositories.StatusTransition{
		TransactionID: transactionID,
		To:            models.TransactionStatusRejected,
		Note:          RejectionNote(reason),
	})
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to reject transaction")
		return false, err
	}
	if !applied {
		i.logger.Info().Str("transaction_id", transactionID).Msg("transaction not pending, rejection skipped")
		return false, nil
	}

	i.logger.Info().Str("transaction_id", transactionID).Msg("transaction rejected")
	i.publish(ctx, dtos.TransactionDecision{
		TransactionID: transactionID,
		Status:        models.TransactionStatusRejected,
		Reason:        reason,
		DecidedAt:     i.now(),
	})
	return true, nil
}

func RejectionNote(reason string) string {
	return fmt.Sprintf("%s%s", RejectionNotePrefix, reason)
}

// publish never fails the decision; the transition is already committed.
func (i *ApprovalInteractor) publish(ctx context.Context, decision dtos.TransactionDecision) {
	if err := i.publisher.PublishDecision(ctx, decision); err != nil {
		i.logger.Error().Err(err).
			Str("transaction_id", decision.TransactionID).
			Str("status", string(decision.Status)).
			Msg(apperrors.ErrFailedPublishDecision)
	}
}
