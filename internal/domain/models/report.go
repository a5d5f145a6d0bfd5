package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dashboard struct {
	Statistics         Statistics          `json:"statistics"`
	IncomeByCategory   []CategoryStatistic `json:"incomeByCategory"`
	ExpenseByCategory  []CategoryStatistic `json:"expenseByCategory"`
	Year               int                 `json:"year"`
	Monthly            []MonthlyStatistic  `json:"monthly"`
	TopTransactions    []Transaction       `json:"topTransactions"`
	RecentTransactions []Transaction       `json:"recentTransactions"`
	Anomalies          []AnomalyResult     `json:"anomalies"`
	GeneratedAt        time.Time           `json:"generatedAt"`
}

type ForecastPoint struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type CashFlowForecast struct {
	Method       string          `json:"method"`
	BasedOnMonth int             `json:"basedOnMonths"`
	Points       []ForecastPoint `json:"points"`
}

type PerformanceComparison struct {
	Projects []ROIResult `json:"projects"`
}
