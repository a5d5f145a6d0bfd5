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
	"golang.org/x/sync/errgroup"
)

const (
	DashboardTopTransactions    = 10
	DashboardRecentDays         = 7
	DashboardRecentTransactions = 10
	DashboardAnomalyDays        = 30
	MaxForecastMonths           = 24
)

// ReportInteractor composes the individual reports into caller-facing views.
type ReportInteractor struct {
	statistics            *StatisticsInteractor
	anomalies             *AnomalyInteractor
	projects              *ProjectInteractor
	transactionRepository repositories.TransactionRepository
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewReportInteractor(
	statistics *StatisticsInteractor,
	anomalies *AnomalyInteractor,
	projects *ProjectInteractor,
	transactionRepository repositories.TransactionRepository,
) *ReportInteractor {
	l := log.GetLogger()
	return &ReportInteractor{
		statistics:            statistics,
		anomalies:             anomalies,
		projects:              projects,
		transactionRepository: transactionRepository,
		logger:                &l,
		now:                   time.Now,
	}
}

// GetDashboard gathers every dashboard section concurrently. A zero year means the current one.
func (i *ReportInteractor) GetDashboard(ctx context.Context, r *models.DateRange, year int) (*models.Dashboard, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}
	if year == 0 {
		year = i.now().Year()
	}

	dashboard := &models.Dashboard{Year: year}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dashboard.Statistics, err = i.statistics.GetStatistics(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		dashboard.IncomeByCategory, err = i.statistics.GetCategoryStatistics(gctx, models.TransactionTypeIncome, r)
		return err
	})
	g.Go(func() (err error) {
		dashboard.ExpenseByCategory, err = i.statistics.GetCategoryStatistics(gctx, models.TransactionTypeExpense, r)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Monthly, err = i.statistics.GetMonthlyStatistics(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		dashboard.TopTransactions, err = i.statistics.GetTopTransactions(gctx, DashboardTopTransactions, nil)
		return err
	})
	g.Go(func() (err error) {
		dashboard.RecentTransactions, err = i.statistics.GetRecentTransactions(gctx, DashboardRecentDays, DashboardRecentTransactions)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Anomalies, err = i.anomalies.DetectAnomalies(gctx, DashboardAnomalyDays)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard.GeneratedAt = i.now()
	return dashboard, nil
}

// GetCashFlowForecast projects the average of the last `months` complete months flat
// over the next `months` months, starting with the current one.
func (i *ReportInteractor) GetCashFlowForecast(ctx context.Context, months int) (models.CashFlowForecast, error) {
	if months < 1 || months > MaxForecastMonths {
		return models.CashFlowForecast{}, apperrors.NewValidationErrorf("months must be between 1 and %d", MaxForecastMonths)
	}

	current := analytics.MonthStart(i.now())
	from := current.AddDate(0, -months, 0)
	to := current.AddDate(0, 0, -1)
	history := readTransactions(ctx, i.transactionRepository, i.logger, "cash flow forecast",
		repositories.TransactionFilter{DateFrom: &from, DateTo: &to})

	return analytics.TrailingAverageForecast(history, current, months), nil
}

func (i *ReportInteractor) CompareProjectPerformance(ctx context.Context, projectIDs []string) (models.PerformanceComparison, error) {
	return i.projects.CompareProjectPerformance(ctx, projectIDs)
}
