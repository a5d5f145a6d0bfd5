package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withAmounts(amounts ...float64) []models.Transaction {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	result := make([]models.Transaction, len(amounts))
	for i, a := range amounts {
		result[i] = models.Transaction{
			ID:              fmt.Sprintf("tx-%d", i),
			Code:            fmt.Sprintf("TC%06d", i+1),
			Amount:          decimal.NewFromFloat(a),
			Type:            models.TransactionTypeExpense,
			Status:          models.TransactionStatusApproved,
			TransactionDate: base.AddDate(0, 0, i%28),
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
	}
	return result
}

func TestMeanStdDev(t *testing.T) {
	mean, stddev := MeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, stddev)

	mean, stddev = MeanStdDev(nil)
	assert.Zero(t, mean)
	assert.Zero(t, stddev)
}

func TestDetectAnomalies(t *testing.T) {
	t.Run("empty_set", func(t *testing.T) {
		assert.Empty(t, DetectAnomalies(nil))
	})

	t.Run("single_record", func(t *testing.T) {
		assert.Empty(t, DetectAnomalies(withAmounts(1500)))
	})

	t.Run("zero_deviation", func(t *testing.T) {
		result := DetectAnomalies(withAmounts(250, 250, 250, 250))
		require.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("five_elements_cap_z_at_two", func(t *testing.T) {
		// With a single outlier among n values the population z-score cannot exceed sqrt(n-1).
		result := DetectAnomalies(withAmounts(100, 102, 98, 101, 5000))
		assert.Empty(t, result)
	})

	t.Run("outlier_in_larger_window", func(t *testing.T) {
		result := DetectAnomalies(withAmounts(100, 102, 98, 101, 99, 100, 103, 97, 100, 5000))
		require.Len(t, result, 1)

		a := result[0]
		assert.Equal(t, "tx-9", a.TransactionID)
		assert.Equal(t, models.AnomalyTypeUnusualAmount, a.Type)
		assert.InDelta(t, 3.0, a.ZScore, 0.001)
		assert.InDelta(t, a.ZScore/5, a.Severity, 1e-9)
		assert.InDelta(t, a.ZScore/3, a.Confidence, 1e-9)
		require.Len(t, a.Reasons, 1)
		assert.Contains(t, a.Reasons[0], "standard deviations above")
	})

	t.Run("scores_capped_at_one", func(t *testing.T) {
		amounts := make([]float64, 0, 30)
		for i := 0; i < 29; i++ {
			amounts = append(amounts, 100)
		}
		amounts = append(amounts, 5000)

		result := DetectAnomalies(withAmounts(amounts...))
		require.Len(t, result, 1)
		assert.InDelta(t, math.Sqrt(29), result[0].ZScore, 1e-9)
		assert.Equal(t, 1.0, result[0].Severity)
		assert.Equal(t, 1.0, result[0].Confidence)
	})

	t.Run("sorted_by_z_and_bounded", func(t *testing.T) {
		amounts := make([]float64, 0, 1060)
		for i := 0; i < 1000; i++ {
			amounts = append(amounts, 100)
		}
		for i := 0; i < 60; i++ {
			amounts = append(amounts, 5000+float64(i*50))
		}

		result := DetectAnomalies(withAmounts(amounts...))
		require.Len(t, result, MaxAnomalies)
		for i, a := range result {
			assert.Greater(t, a.ZScore, ZScoreThreshold)
			assert.GreaterOrEqual(t, a.Severity, 0.0)
			assert.LessOrEqual(t, a.Severity, 1.0)
			assert.GreaterOrEqual(t, a.Confidence, 0.0)
			assert.LessOrEqual(t, a.Confidence, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, result[i-1].ZScore, a.ZScore)
			}
		}
		assert.True(t, result[0].Amount.Equal(decimal.NewFromInt(7950)))
	})

	t.Run("below_mean_outlier", func(t *testing.T) {
		amounts := make([]float64, 0, 30)
		for i := 0; i < 29; i++ {
			amounts = append(amounts, 1000)
		}
		amounts = append(amounts, 0)

		result := DetectAnomalies(withAmounts(amounts...))
		require.Len(t, result, 1)
		assert.Contains(t, result[0].Reasons[0], "below")
	})
}
