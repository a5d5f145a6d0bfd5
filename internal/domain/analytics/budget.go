package analytics

import (
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	nearLimitRatio = decimal.NewFromInt(80)
)

// Utilization is expense as a percentage of budget; zero when there is no budget.
func Utilization(expense, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return expense.Div(budget).Mul(hundred)
}

// ProjectFinance folds a project's transactions into spend-vs-budget figures.
func ProjectFinance(project models.Project, transactions []models.Transaction) models.ProjectFinanceStatistics {
	stats := Summarize(transactions)
	result := models.ProjectFinanceStatistics{
		ProjectID:        project.ID,
		ProjectName:      project.Name,
		Income:           stats.TotalIncome,
		Expense:          stats.TotalExpense,
		Balance:          stats.Balance,
		Budget:           project.Budget,
		Utilization:      Utilization(stats.TotalExpense, project.Budget),
		TransactionCount: stats.TransactionCount,
	}
	for i := range transactions {
		d := transactions[i].TransactionDate
		if result.LastTransactionDate == nil || d.After(*result.LastTransactionDate) {
			result.LastTransactionDate = &d
		}
	}
	return result
}

// CheckBudget classifies spend against budget. Over budget wins over near limit.
func CheckBudget(finance models.ProjectFinanceStatistics) models.BudgetCheckResult {
	result := models.BudgetCheckResult{
		ProjectID:    finance.ProjectID,
		Budget:       finance.Budget,
		Expense:      finance.Expense,
		Remaining:    finance.Budget.Sub(finance.Expense),
		Utilization:  finance.Utilization,
		IsOverBudget: finance.Expense.GreaterThan(finance.Budget),
		IsNearLimit:  finance.Utilization.GreaterThan(nearLimitRatio),
		Status:       models.BudgetStatusNormal,
	}
	switch {
	case result.IsOverBudget:
		result.Status = models.BudgetStatusOverBudget
	case result.IsNearLimit:
		result.Status = models.BudgetStatusNearLimit
	}
	result.StatusLabel = result.Status.Label()
	return result
}
