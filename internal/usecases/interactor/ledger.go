package interactor

import (
	"context"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/rs/zerolog"
)

// readTransactions is the read path of every reporting operation. A store failure
// is logged and reported as an empty ledger so dashboards keep rendering.
func readTransactions(ctx context.Context, repo repositories.TransactionRepository, logger *zerolog.Logger, op string, filter repositories.TransactionFilter) []models.Transaction {
	transactions, err := repo.Find(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Str("operation", op).Msg(apperrors.ErrFailedLoadReport)
		return nil
	}
	return transactions
}

func validateRange(r *models.DateRange) error {
	if r != nil && r.From.After(r.To) {
		return apperrors.NewValidationErrorf("%s: %s is after %s",
			apperrors.ErrInvalidDateRange, r.From.Format(time.DateOnly), r.To.Format(time.DateOnly))
	}
	return nil
}

func rangeFilter(r *models.DateRange) repositories.TransactionFilter {
	filter := repositories.TransactionFilter{}
	if r != nil {
		from, to := r.From, r.To
		filter.DateFrom = &from
		filter.DateTo = &to
	}
	return filter
}

// startOfDay returns the calendar day of t, in t's own zone, as UTC midnight.
// Transaction dates are stored the same way.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validateWindow accepts 0 (today only) up to MaxWindowDays for every trailing window.
func validateWindow(days int) error {
	if days < 0 || days > MaxWindowDays {
		return apperrors.NewValidationErrorf("days must be between 0 and %d", MaxWindowDays)
	}
	return nil
}

// windowStart is the first date of a trailing window of the given number of days.
func windowStart(now time.Time, days int) time.Time {
	return startOfDay(now).AddDate(0, 0, -days)
}
