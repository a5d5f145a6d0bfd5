package analytics

import (
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
)

const ForecastMethodTrailingAverage = "trailing-average"

// MonthStart returns the first day of t's calendar month as UTC midnight.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrailingAverageForecast averages income and expense of the given history (expected to
// cover exactly `months` complete months) and repeats that average for the `months`
// months starting at firstMonth. It is a flat projection, nothing more.
func TrailingAverageForecast(history []models.Transaction, firstMonth time.Time, months int) models.CashFlowForecast {
	forecast := models.CashFlowForecast{
		Method:       ForecastMethodTrailingAverage,
		BasedOnMonth: months,
		Points:       make([]models.ForecastPoint, 0, months),
	}
	if months <= 0 {
		return forecast
	}

	stats := Summarize(history)
	divisor := decimal.NewFromInt(int64(months))
	income := stats.TotalIncome.Div(divisor).Round(2)
	expense := stats.TotalExpense.Div(divisor).Round(2)

	start := MonthStart(firstMonth)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		forecast.Points = append(forecast.Points, models.ForecastPoint{
			Year:    m.Year(),
			Month:   int(m.Month()),
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		})
	}
	return forecast
}
