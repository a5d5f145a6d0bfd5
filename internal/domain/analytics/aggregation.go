// Package analytics holds the pure aggregation and scoring logic of the engine.
// Nothing here talks to a store; every function works on a transaction slice
// that is expected in creation order.
package analytics

import (
	"sort"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Summarize totals income and expense. An empty slice yields all-zero statistics.
func Summarize(transactions []models.Transaction) models.Statistics {
	stats := models.Statistics{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range transactions {
		t := &transactions[i]
		switch t.Type {
		case models.TransactionTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		case models.TransactionTypeExpense:
			stats.TotalExpense = stats.TotalExpense.Add(t.Amount)
		}
		stats.TransactionCount++
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)
	return stats
}

// ByCategory sums amounts per category for a single transaction type,
// largest amount first and category name as tie breaker.
func ByCategory(transactions []models.Transaction, typ models.TransactionType) []models.CategoryStatistic {
	index := make(map[string]int)
	result := make([]models.CategoryStatistic, 0)
	for i := range transactions {
		t := &transactions[i]
		if t.Type != typ {
			continue
		}
		pos, ok := index[t.Category]
		if !ok {
			pos = len(result)
			index[t.Category] = pos
			result = append(result, models.CategoryStatistic{Category: t.Category, Amount: decimal.Zero})
		}
		result[pos].Amount = result[pos].Amount.Add(t.Amount)
		result[pos].Count++
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// Monthly buckets a year's transactions by calendar month. Months without any
// transaction are left out, so callers must not assume twelve entries.
func Monthly(transactions []models.Transaction, year int) []models.MonthlyStatistic {
	var buckets [12]*models.MonthlyStatistic
	for i := range transactions {
		t := &transactions[i]
		if t.TransactionDate.Year() != year {
			continue
		}
		m := int(t.TransactionDate.Month())
		b := buckets[m-1]
		if b == nil {
			b = &models.MonthlyStatistic{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[m-1] = b
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			b.Income = b.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			b.Expense = b.Expense.Add(t.Amount)
		}
	}

	result := make([]models.MonthlyStatistic, 0, 12)
	for _, b := range buckets {
		if b == nil {
			continue
		}
		b.Balance = b.Income.Sub(b.Expense)
		result = append(result, *b)
	}
	return result
}

// TopByAmount returns at most n transactions, largest amount first.
// Equal amounts keep creation order.
func TopByAmount(transactions []models.Transaction, n int) []models.Transaction {
	sorted := inCreationOrder(transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	return limit(sorted, n)
}

// MostRecent returns at most n transactions, latest transaction date first.
// Equal dates keep creation order.
func MostRecent(transactions []models.Transaction, n int) []models.Transaction {
	sorted := inCreationOrder(transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.After(sorted[j].TransactionDate)
	})
	return limit(sorted, n)
}

func inCreationOrder(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

func limit(transactions []models.Transaction, n int) []models.Transaction {
	if n < 0 {
		n = 0
	}
	if len(transactions) > n {
		return transactions[:n]
	}
	return transactions
}
