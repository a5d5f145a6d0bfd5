package interactor

import (
	"context"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/analytics"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

// Decided-against transactions do not take part in anomaly scoring.
var anomalyExcludedStatuses = []models.TransactionStatus{
	models.TransactionStatusRejected,
	models.TransactionStatusCancelled,
}

type AnomalyInteractor struct {
	transactionRepository repositories.TransactionRepository
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewAnomalyInteractor(transactionRepository repositories.TransactionRepository) *AnomalyInteractor {
	l := log.GetLogger()
	return &AnomalyInteractor{
		transactionRepository: transactionRepository,
		logger:                &l,
		now:                   time.Now,
	}
}

// DetectAnomalies scores every transaction dated within the trailing window against
// the mean and standard deviation of that same window.
func (i *AnomalyInteractor) DetectAnomalies(ctx context.Context, days int) ([]models.AnomalyResult, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}

	from := windowStart(i.now(), days)
	working := readTransactions(ctx, i.transactionRepository, i.logger, "anomalies", repositories.TransactionFilter{
		DateFrom:        &from,
		ExcludeStatuses: anomalyExcludedStatuses,
	})

	anomalies := analytics.DetectAnomalies(working)
	i.logger.Debug().
		Int("days", days).
		Int("working_set", len(working)).
		Int("anomalies", len(anomalies)).
		Msg("anomaly scan finished")
	return anomalies, nil
}
