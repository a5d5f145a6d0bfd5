package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
)

const (
	SerializationError   = "40001"
	UniqueViolationError = "23505"
)

//go:generate mockgen -destination=mocks/mock_transaction.go -package=mocks -source=transaction.go TransactionRepository

// TransactionRepository is the ledger store for transactions. Find and GetBy* never mutate;
// TransitionFromPending is the only way the engine changes a transaction's status.
type TransactionRepository interface {
	Find(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetByCode(ctx context.Context, code string) (*models.Transaction, error)
	Insert(ctx context.Context, transaction *models.Transaction) error
	UpdatePending(ctx context.Context, transaction *models.Transaction) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	MaxCodeSuffix(ctx context.Context, prefix string) (int, error)
	TransitionFromPending(ctx context.Context, transition StatusTransition) (bool, error)
}

// StatusTransition describes a compare-and-swap from Pending to To.
// Note, when set, is appended to the description with DescriptionSeparator.
type StatusTransition struct {
	TransactionID string
	To            models.TransactionStatus
	ApprovedBy    string
	At            time.Time
	Note          string
}

const DescriptionSeparator = " | "

// AppendNote joins a note onto an existing description the same way every store does.
func AppendNote(description, note string) string {
	if note == "" {
		return description
	}
	if description == "" {
		return note
	}
	return description + DescriptionSeparator + note
}

// TransactionFilter narrows Find. Zero values mean "no restriction".
// Results are always returned in creation order.
type TransactionFilter struct {
	DateFrom        *time.Time
	DateTo          *time.Time
	ProjectID       string
	EmployeeID      string
	CustomerID      string
	Category        string
	Type            models.TransactionType
	Statuses        []models.TransactionStatus
	ExcludeStatuses []models.TransactionStatus
	Search          string
	Limit           int
}

// Matches evaluates the filter against one transaction in memory. Limit is not considered.
func (f TransactionFilter) Matches(t *models.Transaction) bool {
	if f.DateFrom != nil && t.TransactionDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.TransactionDate.After(*f.DateTo) {
		return false
	}
	if f.ProjectID != "" && models.RefID(t.Project) != f.ProjectID {
		return false
	}
	if f.EmployeeID != "" && models.RefID(t.Employee) != f.EmployeeID {
		return false
	}
	if f.CustomerID != "" && models.RefID(t.Customer) != f.CustomerID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
		return false
	}
	if containsStatus(f.ExcludeStatuses, t.Status) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Code), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.ReferenceNumber), q) {
			return false
		}
	}
	return true
}

func containsStatus(list []models.TransactionStatus, s models.TransactionStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
