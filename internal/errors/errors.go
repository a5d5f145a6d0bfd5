package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToRunMigrations        = "Failed to run database migrations"
	ErrorFailedToConnectToTheBroker   = "Failed to connect to the message broker"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrorInvalidConfiguration         = "Invalid configuration"
	ErrFailedDecodeRequestBody        = "Failed to decode request body"
	ErrInvalidRequestBody             = "Invalid request body"
	ErrFailedLoadReport               = "Failed to load report data"
	ErrFailedPublishDecision          = "Failed to publish transaction decision"
	ErrApproverIDRequired             = "X-Approver-ID is required"
	ErrProjectIDRequired              = "Project ID is required"
	ErrInvalidProjectID               = "Invalid Project ID"
	ErrTransactionIDRequired          = "Transaction ID is required"
	ErrInvalidTransactionID           = "Invalid Transaction ID"
	ErrInvalidDateRange               = "Invalid date range"
	ErrRejectReasonRequired           = "Rejection reason is required"
	ErrNegativeAmount                 = "Amount must not be negative"
	ErrNegativeBudget                 = "Budget must not be negative"
)

// ValidationError is returned before any store mutation when the caller's input is unusable.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewValidationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

type DuplicateCodeError struct {
	Code string
}

func NewDuplicateCodeError(code string) *DuplicateCodeError {
	return &DuplicateCodeError{Code: code}
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("transaction code %s already exists", e.Code)
}

type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// StorageError wraps a ledger store failure with the operation that caused it.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
