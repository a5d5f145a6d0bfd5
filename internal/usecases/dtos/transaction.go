package dtos

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TransactionDTO is the intake payload for creating or editing a transaction.
// Amount may arrive as a JSON string or number; DecodeAmount normalises it.
type TransactionDTO struct {
	Code            string          `json:"code"`
	Amount          string          `json:"-"`
	RawAmount       json.RawMessage `json:"amount"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	TransactionDate string          `json:"transactionDate"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	ProjectID       string          `json:"projectId"`
	EmployeeID      string          `json:"employeeId"`
	CustomerID      string          `json:"customerId"`
	RecordedBy      string          `json:"recordedBy"`
}

// DecodeAmount copies RawAmount into Amount.
func (d *TransactionDTO) DecodeAmount() error {
	amount, err := decodeAmount(d.RawAmount)
	if err != nil {
		return err
	}
	d.Amount = amount
	return nil
}

type RejectDTO struct {
	Reason string `json:"reason"`
}

type BudgetDTO struct {
	Budget    string          `json:"-"`
	RawBudget json.RawMessage `json:"budget"`
}

func (d *BudgetDTO) DecodeBudget() error {
	budget, err := decodeAmount(d.RawBudget)
	if err != nil {
		return err
	}
	d.Budget = budget
	return nil
}

type ApprovalResultDTO struct {
	TransactionID string `json:"transactionId"`
	Applied       bool   `json:"applied"`
}

type CodeDTO struct {
	Code string `json:"code"`
}

func decodeAmount(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", fmt.Errorf("amount is required")
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return "", err
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("amount must be a string or a number")
	}
}
