package analytics

import (
	"testing"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(budget int64) models.Project {
	return models.Project{ID: "p-1", Name: "Warehouse", Budget: decimal.NewFromInt(budget)}
}

func TestUtilization(t *testing.T) {
	assert.True(t, Utilization(decimal.NewFromInt(500), decimal.Zero).IsZero())
	assert.True(t, Utilization(decimal.Zero, decimal.Zero).IsZero())
	assert.Equal(t, "50", Utilization(decimal.NewFromInt(500), decimal.NewFromInt(1000)).String())
}

func TestCheckBudget(t *testing.T) {
	cases := []struct {
		name     string
		budget   int64
		expense  string
		status   models.BudgetStatus
		label    string
		over     bool
		nearLmt  bool
		utilized string
	}{
		{"near_limit", 1000000, "850000", models.BudgetStatusNearLimit, "Gần hết ngân sách", false, true, "85"},
		{"normal", 1000000, "800000", models.BudgetStatusNormal, "Bình thường", false, false, "80"},
		{"over_budget_wins", 1000, "1200", models.BudgetStatusOverBudget, "Vượt ngân sách", true, true, "120"},
		{"zero_budget", 0, "10", models.BudgetStatusOverBudget, "Vượt ngân sách", true, false, "0"},
		{"zero_budget_no_spend", 0, "0", models.BudgetStatusNormal, "Bình thường", false, false, "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			txs := []models.Transaction{
				tx("e", models.TransactionTypeExpense, c.expense, "Build", day(2024, 2, 1), 1),
			}
			finance := ProjectFinance(project(c.budget), txs)
			result := CheckBudget(finance)

			assert.Equal(t, c.status, result.Status)
			assert.Equal(t, c.label, result.StatusLabel)
			assert.Equal(t, c.over, result.IsOverBudget)
			assert.Equal(t, c.nearLmt, result.IsNearLimit)
			assert.True(t, decimal.RequireFromString(c.utilized).Equal(result.Utilization), result.Utilization.String())
		})
	}
}

func TestProjectFinance(t *testing.T) {
	txs := []models.Transaction{
		tx("1", models.TransactionTypeIncome, "200000", "Sales", day(2024, 2, 1), 1),
		tx("2", models.TransactionTypeExpense, "100000", "Build", day(2024, 4, 2), 2),
		tx("3", models.TransactionTypeExpense, "50000", "Build", day(2024, 3, 2), 3),
	}
	result := ProjectFinance(project(300000), txs)

	assert.Equal(t, "Warehouse", result.ProjectName)
	assert.Equal(t, "150000", result.Expense.String())
	assert.Equal(t, "50000", result.Balance.String())
	assert.Equal(t, "50", result.Utilization.String())
	assert.Equal(t, 3, result.TransactionCount)
	require.NotNil(t, result.LastTransactionDate)
	assert.Equal(t, day(2024, 4, 2), *result.LastTransactionDate)

	empty := ProjectFinance(project(0), nil)
	assert.Nil(t, empty.LastTransactionDate)
	assert.True(t, empty.Utilization.IsZero())
}

func TestROI(t *testing.T) {
	t.Run("high", func(t *testing.T) {
		txs := []models.Transaction{
			tx("1", models.TransactionTypeIncome, "200000", "Sales", day(2024, 2, 1), 1),
			tx("2", models.TransactionTypeExpense, "100000", "Build", day(2024, 2, 2), 2),
		}
		result := ROI("p-1", txs)
		assert.Equal(t, "1", result.ROI.String())
		assert.Equal(t, "100", result.ROIPercentage.String())
		assert.Equal(t, "100000", result.Investment.String())
		assert.Equal(t, "200000", result.Return.String())
		assert.Equal(t, models.ROICategoryHigh, result.Category)
	})

	t.Run("no_expense", func(t *testing.T) {
		result := ROI("p-1", []models.Transaction{tx("1", models.TransactionTypeIncome, "10", "Sales", day(2024, 2, 1), 1)})
		assert.True(t, result.ROI.IsZero())
		assert.Equal(t, models.ROICategoryLow, result.Category)
	})

	t.Run("thresholds", func(t *testing.T) {
		assert.Equal(t, models.ROICategoryLow, ClassifyROI(decimal.RequireFromString("0.10")))
		assert.Equal(t, models.ROICategoryMedium, ClassifyROI(decimal.RequireFromString("0.11")))
		assert.Equal(t, models.ROICategoryMedium, ClassifyROI(decimal.RequireFromString("0.20")))
		assert.Equal(t, models.ROICategoryHigh, ClassifyROI(decimal.RequireFromString("0.2001")))
		assert.Equal(t, models.ROICategoryLow, ClassifyROI(decimal.RequireFromString("-0.5")))
	})
}

func TestTrailingAverageForecast(t *testing.T) {
	history := []models.Transaction{
		tx("1", models.TransactionTypeIncome, "300", "Sales", day(2024, 1, 10), 1),
		tx("2", models.TransactionTypeExpense, "150", "Rent", day(2024, 2, 10), 2),
		tx("3", models.TransactionTypeIncome, "300", "Sales", day(2024, 3, 10), 3),
	}
	forecast := TrailingAverageForecast(history, time.Date(2024, 4, 17, 0, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, ForecastMethodTrailingAverage, forecast.Method)
	require.Len(t, forecast.Points, 3)
	assert.Equal(t, 4, forecast.Points[0].Month)
	assert.Equal(t, 6, forecast.Points[2].Month)
	assert.Equal(t, "200", forecast.Points[0].Income.String())
	assert.Equal(t, "50", forecast.Points[0].Expense.String())
	assert.Equal(t, "150", forecast.Points[0].Balance.String())

	assert.Empty(t, TrailingAverageForecast(history, time.Now(), 0).Points)
}
