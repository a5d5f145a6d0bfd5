package interactor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/mufasadev/finance-analytics/pkg/util/repeat"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type TransactionInteractor struct {
	transactionRepository repositories.TransactionRepository
	codes                 *CodeGenerator
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewTransactionInteractor(transactionRepository repositories.TransactionRepository, codes *CodeGenerator) *TransactionInteractor {
	l := log.GetLogger()
	return &TransactionInteractor{
		transactionRepository: transactionRepository,
		codes:                 codes,
		logger:                &l,
		now:                   time.Now,
	}
}

// CreateTransaction records a new pending transaction. A code is generated unless the
// caller supplies one, in which case it must not be taken yet.
func (i *TransactionInteractor) CreateTransaction(ctx context.Context, dto *dtos.TransactionDTO) (*models.Transaction, error) {
	typ, err := models.ParseTransactionType(dto.Type)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	transaction := &models.Transaction{
		Type:       typ,
		Status:     models.TransactionStatusPending,
		RecordedBy: strings.TrimSpace(dto.RecordedBy),
	}
	if err = checkLength("recordedBy", transaction.RecordedBy, MaxActorLength); err != nil {
		return nil, err
	}
	if err = i.applyDTO(transaction, dto); err != nil {
		return nil, err
	}

	if code := strings.TrimSpace(dto.Code); code != "" {
		err = i.insertWithCode(ctx, transaction, code)
	} else {
		err = i.insertWithGeneratedCode(ctx, transaction)
	}
	if err != nil {
		i.logger.Error().Err(err).Str("code", transaction.Code).Msg("failed to insert transaction")
		return nil, err
	}

	i.logger.Info().
		Str("transaction_id", transaction.ID).
		Str("code", transaction.Code).
		Str("amount", transaction.Amount.StringFixed(2)).
		Msg("transaction recorded")
	return i.reload(ctx, transaction), nil
}

func (i *TransactionInteractor) insertWithCode(ctx context.Context, transaction *models.Transaction, code string) error {
	if err := checkLength("code", code, MaxCodeLength); err != nil {
		return err
	}
	existing, err := i.transactionRepository.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewDuplicateCodeError(code)
	}

	transaction.Code = code
	return i.transactionRepository.Insert(ctx, transaction)
}

// insertWithGeneratedCode allocates the next code and inserts. Losing the code to a
// concurrent create means another transaction took it, so a fresh code is tried.
func (i *TransactionInteractor) insertWithGeneratedCode(ctx context.Context, transaction *models.Transaction) error {
	return repeat.Until(func() error {
		code, err := i.codes.GenerateTransactionCode(ctx, transaction.Type)
		if err != nil {
			return err
		}
		transaction.Code = code
		return i.transactionRepository.Insert(ctx, transaction)
	}, isDuplicateCode, MaxCodeAttempts)
}

func isDuplicateCode(err error) bool {
	var duplicate *apperrors.DuplicateCodeError
	return apperrors.As(err, &duplicate)
}

// UpdateTransaction edits a transaction while it is still pending. Code and type are fixed.
func (i *TransactionInteractor) UpdateTransaction(ctx context.Context, id string, dto *dtos.TransactionDTO) (*models.Transaction, error) {
	transaction, err := i.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transaction.IsPending() {
		return nil, apperrors.NewValidationErrorf("transaction %s is %s and can no longer be edited", transaction.Code, transaction.Status)
	}
	if dto.Type != "" && dto.Type != string(transaction.Type) {
		return nil, apperrors.NewValidationError("transaction type cannot be changed")
	}
	if dto.Code != "" && dto.Code != transaction.Code {
		return nil, apperrors.NewValidationError("transaction code cannot be changed")
	}

	if err = i.applyDTO(transaction, dto); err != nil {
		return nil, err
	}

	updated, err := i.transactionRepository.UpdatePending(ctx, transaction)
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to update transaction")
		return nil, err
	}
	if !updated {
		return nil, apperrors.NewValidationErrorf("transaction %s was decided or removed concurrently", transaction.Code)
	}

	i.logger.Info().Str("transaction_id", id).Msg("transaction updated")
	return i.reload(ctx, transaction), nil
}

func (i *TransactionInteractor) DeleteTransaction(ctx context.Context, id string) error {
	deleted, err := i.transactionRepository.Delete(ctx, id)
	if err != nil {
		i.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to delete transaction")
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundError("transaction", id)
	}

	i.logger.Info().Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

func (i *TransactionInteractor) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	transaction, err := i.transactionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperrors.NewNotFoundError("transaction", id)
	}
	return transaction, nil
}

// SearchTransactions lists transactions in creation order. Like every report it
// degrades to an empty list when the store is unavailable.
func (i *TransactionInteractor) SearchTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, apperrors.NewValidationError(apperrors.ErrInvalidDateRange)
	}
	if filter.Limit < 0 || filter.Limit > MaxResultSize {
		return nil, apperrors.NewValidationErrorf("limit must be between 0 and %d", MaxResultSize)
	}

	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "search transactions", filter)
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// GenerateTransactionCode previews the code the next transaction of typ would receive.
func (i *TransactionInteractor) GenerateTransactionCode(ctx context.Context, typ models.TransactionType) (string, error) {
	return i.codes.GenerateTransactionCode(ctx, typ)
}

// applyDTO validates the editable fields and copies them onto transaction.
func (i *TransactionInteractor) applyDTO(transaction *models.Transaction, dto *dtos.TransactionDTO) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(dto.Amount))
	if err != nil {
		return apperrors.NewValidationErrorf("invalid amount %q", dto.Amount)
	}
	if amount.IsNegative() {
		return apperrors.NewValidationError(apperrors.ErrNegativeAmount)
	}

	date := transaction.TransactionDate
	if date.IsZero() {
		date = startOfDay(i.now())
	}
	if dto.TransactionDate != "" {
		if date, err = time.Parse(time.DateOnly, dto.TransactionDate); err != nil {
			return apperrors.NewValidationErrorf("invalid transaction date %q, expected YYYY-MM-DD", dto.TransactionDate)
		}
	}

	category := strings.TrimSpace(dto.Category)
	if err = checkLength("category", category, MaxCategoryLength); err != nil {
		return err
	}
	if err = checkLength("paymentMethod", dto.PaymentMethod, MaxPaymentMethodLength); err != nil {
		return err
	}
	if err = checkLength("referenceNumber", dto.ReferenceNumber, MaxReferenceNumberLength); err != nil {
		return err
	}

	project, err := reference(dto.ProjectID, "project")
	if err != nil {
		return err
	}
	employee, err := reference(dto.EmployeeID, "employee")
	if err != nil {
		return err
	}
	customer, err := reference(dto.CustomerID, "customer")
	if err != nil {
		return err
	}

	transaction.Amount = amount.Round(2)
	transaction.Category = category
	transaction.TransactionDate = date
	transaction.Description = dto.Description
	transaction.PaymentMethod = dto.PaymentMethod
	transaction.ReferenceNumber = dto.ReferenceNumber
	transaction.Project = project
	transaction.Employee = employee
	transaction.Customer = customer
	return nil
}

// reload re-reads the transaction so display names are resolved; the in-hand copy is
// returned if the read fails.
func (i *TransactionInteractor) reload(ctx context.Context, transaction *models.Transaction) *models.Transaction {
	fresh, err := i.transactionRepository.GetByID(ctx, transaction.ID)
	if err != nil || fresh == nil {
		return transaction
	}
	return fresh
}

func reference(id, entity string) (*models.Reference, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationErrorf("invalid %s id %q", entity, id)
	}
	return &models.Reference{ID: id}, nil
}
