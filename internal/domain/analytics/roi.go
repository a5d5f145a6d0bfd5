package analytics

import (
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	highROI   = decimal.RequireFromString("0.20")
	mediumROI = decimal.RequireFromString("0.10")
)

// ROI treats total expense as the investment and total income as the return.
func ROI(projectID string, transactions []models.Transaction) models.ROIResult {
	stats := Summarize(transactions)
	roi := decimal.Zero
	if stats.TotalExpense.IsPositive() {
		roi = stats.TotalIncome.Sub(stats.TotalExpense).Div(stats.TotalExpense)
	}
	return models.ROIResult{
		ProjectID:     projectID,
		Investment:    stats.TotalExpense,
		Return:        stats.TotalIncome,
		ROI:           roi,
		ROIPercentage: roi.Mul(hundred),
		Category:      ClassifyROI(roi),
	}
}

func ClassifyROI(roi decimal.Decimal) models.ROICategory {
	switch {
	case roi.GreaterThan(highROI):
		return models.ROICategoryHigh
	case roi.GreaterThan(mediumROI):
		return models.ROICategoryMedium
	default:
		return models.ROICategoryLow
	}
}
