package interactor

import (
	"context"
	"testing"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type seed struct {
	code     string
	typ      models.TransactionType
	amount   string
	category string
	date     time.Time
	status   models.TransactionStatus
	project  string
}

// insert stores the seeds in order and returns them with ids assigned.
func insert(t *testing.T, store *memory.Store, seeds ...seed) []*models.Transaction {
	t.Helper()
	repo := store.Transactions()
	out := make([]*models.Transaction, 0, len(seeds))
	for _, s := range seeds {
		status := s.status
		if status == "" {
			status = models.TransactionStatusApproved
		}
		tx := &models.Transaction{
			Code:            s.code,
			Amount:          decimal.RequireFromString(s.amount),
			Type:            s.typ,
			Category:        s.category,
			TransactionDate: s.date,
			Status:          status,
		}
		if s.project != "" {
			tx.Project = &models.Reference{ID: s.project}
		}
		require.NoError(t, repo.Insert(context.Background(), tx))
		out = append(out, tx)
	}
	return out
}
