package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// ParseTransactionType maps a stored or requested value to a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeIncome, TransactionTypeExpense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// CodePrefix returns the prefix used for human-readable transaction codes.
func (t TransactionType) CodePrefix() string {
	if t == TransactionTypeIncome {
		return "TN"
	}
	return "TC"
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusApproved  TransactionStatus = "Approved"
	TransactionStatusRejected  TransactionStatus = "Rejected"
	TransactionStatusCancelled TransactionStatus = "Cancelled"
)

// ParseTransactionStatus maps a stored or requested value to a TransactionStatus.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusApproved, TransactionStatusRejected, TransactionStatusCancelled:
		return TransactionStatus(s), nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// Reference is a weak link to a project, employee or customer with its cached display name.
// A nil *Reference means the transaction is unassigned for that dimension.
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// RefID returns the referenced id, or "" for an unassigned reference.
func RefID(r *Reference) string {
	if r == nil {
		return ""
	}
	return r.ID
}

type Transaction struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	Amount          decimal.Decimal   `json:"amount"`
	Type            TransactionType   `json:"type"`
	Category        string            `json:"category"`
	TransactionDate time.Time         `json:"transactionDate"`
	Description     string            `json:"description"`
	PaymentMethod   string            `json:"paymentMethod"`
	ReferenceNumber string            `json:"referenceNumber"`
	Status          TransactionStatus `json:"status"`
	Project         *Reference        `json:"project,omitempty"`
	Employee        *Reference        `json:"employee,omitempty"`
	Customer        *Reference        `json:"customer,omitempty"`
	RecordedBy      string            `json:"recordedBy"`
	ApprovedBy      *string           `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// IsPending reports whether the transaction can still be approved, rejected or edited.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}
