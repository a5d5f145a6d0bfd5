package interactor

import (
	"context"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/analytics"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const (
	MaxResultSize = 1000
	MaxWindowDays = 3650
)

type StatisticsInteractor struct {
	transactionRepository repositories.TransactionRepository
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewStatisticsInteractor(transactionRepository repositories.TransactionRepository) *StatisticsInteractor {
	l := log.GetLogger()
	return &StatisticsInteractor{
		transactionRepository: transactionRepository,
		logger:                &l,
		now:                   time.Now,
	}
}

// GetStatistics totals income and expense over an optional inclusive date range.
func (i *StatisticsInteractor) GetStatistics(ctx context.Context, r *models.DateRange) (models.Statistics, error) {
	if err := validateRange(r); err != nil {
		return models.Statistics{}, err
	}
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "statistics", rangeFilter(r))
	return analytics.Summarize(transactions), nil
}

func (i *StatisticsInteractor) GetCategoryStatistics(ctx context.Context, typ models.TransactionType, r *models.DateRange) ([]models.CategoryStatistic, error) {
	if _, err := models.ParseTransactionType(string(typ)); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validateRange(r); err != nil {
		return nil, err
	}

	filter := rangeFilter(r)
	filter.Type = typ
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "category statistics", filter)
	return analytics.ByCategory(transactions, typ), nil
}

// GetMonthlyStatistics returns one entry per month of the year that has activity.
// Months without transactions are absent, not zero-filled.
func (i *StatisticsInteractor) GetMonthlyStatistics(ctx context.Context, year int) ([]models.MonthlyStatistic, error) {
	if year < 1 || year > 9999 {
		return nil, apperrors.NewValidationErrorf("invalid year %d", year)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "monthly statistics",
		repositories.TransactionFilter{DateFrom: &from, DateTo: &to})
	return analytics.Monthly(transactions, year), nil
}

// GetTopTransactions returns the n largest transactions, optionally of one type.
func (i *StatisticsInteractor) GetTopTransactions(ctx context.Context, n int, typ *models.TransactionType) ([]models.Transaction, error) {
	if n < 1 || n > MaxResultSize {
		return nil, apperrors.NewValidationErrorf("n must be between 1 and %d", MaxResultSize)
	}

	filter := repositories.TransactionFilter{}
	if typ != nil {
		if _, err := models.ParseTransactionType(string(*typ)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Type = *typ
	}
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "top transactions", filter)
	return analytics.TopByAmount(transactions, n), nil
}

// GetRecentTransactions returns at most limit transactions dated within the last days days.
func (i *StatisticsInteractor) GetRecentTransactions(ctx context.Context, days, limit int) ([]models.Transaction, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	if limit < 1 || limit > MaxResultSize {
		return nil, apperrors.NewValidationErrorf("limit must be between 1 and %d", MaxResultSize)
	}

	from := windowStart(i.now(), days)
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "recent transactions",
		repositories.TransactionFilter{DateFrom: &from})
	return analytics.MostRecent(transactions, limit), nil
}
