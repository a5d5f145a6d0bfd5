package interactor

import (
	"context"
	"testing"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(store *memory.Store) *ReportInteractor {
	statistics := NewStatisticsInteractor(store.Transactions())
	statistics.now = fixedClock
	anomalies := NewAnomalyInteractor(store.Transactions())
	anomalies.now = fixedClock
	projects := NewProjectInteractor(store.Projects(), store.Transactions())

	i := NewReportInteractor(statistics, anomalies, projects, store.Transactions())
	i.now = fixedClock
	return i
}

func TestReportInteractor_GetDashboard(t *testing.T) {
	store := memory.NewStore()
	insert(t, store,
		seed{code: "TN000001", typ: models.TransactionTypeIncome, amount: "5000", category: "Sales", date: date(2024, 5, 20)},
		seed{code: "TC000001", typ: models.TransactionTypeExpense, amount: "1200", category: "Rent", date: date(2024, 6, 1)},
		seed{code: "TC000002", typ: models.TransactionTypeExpense, amount: "300", category: "Travel", date: date(2024, 6, 12)},
		seed{code: "TN000002", typ: models.TransactionTypeIncome, amount: "800", category: "Sales", date: date(2023, 11, 2)},
	)
	i := newReportFixture(store)

	dashboard, err := i.GetDashboard(context.Background(), nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 2024, dashboard.Year)
	assert.Equal(t, "5800", dashboard.Statistics.TotalIncome.String())
	assert.Equal(t, 4, dashboard.Statistics.TransactionCount)
	require.Len(t, dashboard.IncomeByCategory, 1)
	assert.Equal(t, "5800", dashboard.IncomeByCategory[0].Amount.String())
	assert.Len(t, dashboard.ExpenseByCategory, 2)
	assert.Len(t, dashboard.Monthly, 2)
	assert.Len(t, dashboard.TopTransactions, 4)
	require.Len(t, dashboard.RecentTransactions, 1)
	assert.Equal(t, "TC000002", dashboard.RecentTransactions[0].Code)
	assert.Empty(t, dashboard.Anomalies)
	assert.Equal(t, testNow, dashboard.GeneratedAt)

	_, err = i.GetDashboard(context.Background(), &models.DateRange{From: date(2024, 2, 1), To: date(2024, 1, 1)}, 2024)
	assert.Error(t, err)
}

func TestReportInteractor_GetCashFlowForecast(t *testing.T) {
	store := memory.NewStore()
	insert(t, store,
		seed{code: "TN000001", typ: models.TransactionTypeIncome, amount: "900", date: date(2024, 3, 5)},
		seed{code: "TC000001", typ: models.TransactionTypeExpense, amount: "300", date: date(2024, 4, 5)},
		seed{code: "TN000002", typ: models.TransactionTypeIncome, amount: "600", date: date(2024, 5, 31)},
		seed{code: "TN000003", typ: models.TransactionTypeIncome, amount: "9999", date: date(2024, 6, 2)},
		seed{code: "TN000004", typ: models.TransactionTypeIncome, amount: "9999", date: date(2024, 2, 28)},
	)
	i := newReportFixture(store)

	forecast, err := i.GetCashFlowForecast(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "trailing-average", forecast.Method)
	require.Len(t, forecast.Points, 3)
	assert.Equal(t, 2024, forecast.Points[0].Year)
	assert.Equal(t, 6, forecast.Points[0].Month)
	assert.Equal(t, 8, forecast.Points[2].Month)
	assert.Equal(t, "500", forecast.Points[0].Income.String(), "only March to May are averaged")
	assert.Equal(t, "100", forecast.Points[0].Expense.String())
	assert.Equal(t, "400", forecast.Points[0].Balance.String())

	_, err = i.GetCashFlowForecast(context.Background(), 0)
	assert.Error(t, err)
}
