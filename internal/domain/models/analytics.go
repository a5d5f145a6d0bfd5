package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of transaction dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

type Statistics struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

type CategoryStatistic struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

type MonthlyStatistic struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type AnomalyType string

const AnomalyTypeUnusualAmount AnomalyType = "UnusualAmount"

type AnomalyResult struct {
	TransactionID   string          `json:"transactionId"`
	TransactionCode string          `json:"transactionCode"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Type            AnomalyType     `json:"anomalyType"`
	ZScore          float64         `json:"zScore"`
	Severity        float64         `json:"severity"`
	Confidence      float64         `json:"confidence"`
	Reasons         []string        `json:"reasons"`
}

type ProjectFinanceStatistics struct {
	ProjectID           string          `json:"projectId"`
	ProjectName         string          `json:"projectName"`
	Income              decimal.Decimal `json:"income"`
	Expense             decimal.Decimal `json:"expense"`
	Balance             decimal.Decimal `json:"balance"`
	Budget              decimal.Decimal `json:"budget"`
	Utilization         decimal.Decimal `json:"utilization"`
	TransactionCount    int             `json:"transactionCount"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
}

type BudgetStatus string

const (
	BudgetStatusNormal     BudgetStatus = "normal"
	BudgetStatusNearLimit  BudgetStatus = "near budget limit"
	BudgetStatusOverBudget BudgetStatus = "over budget"
)

// Label is the text shown to end users.
func (s BudgetStatus) Label() string {
	switch s {
	case BudgetStatusOverBudget:
		return "Vượt ngân sách"
	case BudgetStatusNearLimit:
		return "Gần hết ngân sách"
	default:
		return "Bình thường"
	}
}

type BudgetCheckResult struct {
	ProjectID    string          `json:"projectId"`
	Budget       decimal.Decimal `json:"budget"`
	Expense      decimal.Decimal `json:"expense"`
	Remaining    decimal.Decimal `json:"remaining"`
	Utilization  decimal.Decimal `json:"utilization"`
	IsOverBudget bool            `json:"isOverBudget"`
	IsNearLimit  bool            `json:"isNearLimit"`
	Status       BudgetStatus    `json:"status"`
	StatusLabel  string          `json:"statusLabel"`
}

type ROICategory string

const (
	ROICategoryHigh   ROICategory = "High"
	ROICategoryMedium ROICategory = "Medium"
	ROICategoryLow    ROICategory = "Low"
)

type ROIResult struct {
	ProjectID     string          `json:"projectId"`
	Investment    decimal.Decimal `json:"investment"`
	Return        decimal.Decimal `json:"return"`
	ROI           decimal.Decimal `json:"roi"`
	ROIPercentage decimal.Decimal `json:"roiPercentage"`
	Category      ROICategory     `json:"category"`
}
