package dtos

import (
	"encoding/json"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
)

// TransactionDecision is emitted after an approval or rejection has been committed.
type TransactionDecision struct {
	TransactionID string                   `json:"transactionId"`
	Status        models.TransactionStatus `json:"status"`
	ApprovedBy    string                   `json:"approvedBy,omitempty"`
	Reason        string                   `json:"reason,omitempty"`
	DecidedAt     time.Time                `json:"decidedAt"`
}

func (d TransactionDecision) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

func TransactionDecisionFromJSON(data []byte) (*TransactionDecision, error) {
	var d TransactionDecision
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
