package interactor

import (
	"context"
	"testing"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork = time.FixedZone("EDT", -4*60*60)
	bangkok = time.FixedZone("ICT", 7*60*60)
)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStartOfDay_UsesLocalCalendarDay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"west of UTC late evening", time.Date(2024, 6, 15, 23, 30, 0, 0, newYork), date(2024, 6, 15)},
		{"east of UTC early morning", time.Date(2024, 6, 15, 3, 0, 0, 0, bangkok), date(2024, 6, 15)},
		{"UTC", testNow, date(2024, 6, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startOfDay(tt.now)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestGetRecentTransactions_WestOfUTC(t *testing.T) {
	store := memory.NewStore()
	insert(t, store,
		seed{code: "TC000001", typ: models.TransactionTypeExpense, amount: "10", date: date(2024, 6, 15)},
		seed{code: "TC000002", typ: models.TransactionTypeExpense, amount: "10", date: date(2024, 6, 14)},
	)

	i := NewStatisticsInteractor(store.Transactions())
	i.now = clockAt(time.Date(2024, 6, 15, 12, 0, 0, 0, newYork))

	today, err := i.GetRecentTransactions(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "TC000001", today[0].Code)

	twoDays, err := i.GetRecentTransactions(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, twoDays, 2)
}

func TestCreateTransaction_DefaultDateEastOfUTC(t *testing.T) {
	store := memory.NewStore()
	i := NewTransactionInteractor(store.Transactions(), NewCodeGenerator(store.Transactions()))
	i.now = clockAt(time.Date(2024, 6, 15, 3, 0, 0, 0, bangkok))

	created, err := i.CreateTransaction(context.Background(), dto(t, `{"amount":"25","type":"Income"}`))
	require.NoError(t, err)
	assert.True(t, date(2024, 6, 15).Equal(created.TransactionDate), "got %s", created.TransactionDate)

	stats, err := NewStatisticsInteractor(store.Transactions()).GetStatistics(context.Background(),
		&models.DateRange{From: date(2024, 6, 15), To: date(2024, 6, 15)})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TransactionCount)
	assert.Equal(t, "25", stats.TotalIncome.String())
}

func TestGetCashFlowForecast_EastOfUTC(t *testing.T) {
	store := memory.NewStore()
	insert(t, store,
		seed{code: "TN000001", typ: models.TransactionTypeIncome, amount: "100", date: date(2024, 6, 1)},
		seed{code: "TN000002", typ: models.TransactionTypeIncome, amount: "300", date: date(2024, 6, 30)},
		seed{code: "TN000003", typ: models.TransactionTypeIncome, amount: "5000", date: date(2024, 5, 31)},
	)
	i := newReportFixture(store)
	// already July locally, still June 30 in UTC
	i.now = clockAt(time.Date(2024, 7, 1, 1, 0, 0, 0, bangkok))

	forecast, err := i.GetCashFlowForecast(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, forecast.Points, 1)
	assert.Equal(t, 2024, forecast.Points[0].Year)
	assert.Equal(t, 7, forecast.Points[0].Month)
	assert.Equal(t, "400", forecast.Points[0].Income.String(), "all of June and nothing else")
}
