package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
)

const (
	// ZScoreThreshold is the two-sigma outlier bound; a transaction must exceed it strictly.
	ZScoreThreshold = 2.0
	MaxAnomalies    = 50

	severityScale   = 5.0
	confidenceScale = 3.0
)

// MeanStdDev returns the mean and the population standard deviation of values.
// Both are zero for an empty slice.
func MeanStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var squares float64
	for _, v := range values {
		d := v - mean
		squares += d * d
	}
	return mean, math.Sqrt(squares / float64(len(values)))
}

// DetectAnomalies scores every transaction of the working set against the mean and
// standard deviation of that same set. The caller is responsible for restricting the
// set to the time window and excluding rejected or cancelled transactions.
func DetectAnomalies(working []models.Transaction) []models.AnomalyResult {
	ordered := inCreationOrder(working)
	amounts := make([]float64, len(ordered))
	for i := range ordered {
		amounts[i] = ordered[i].Amount.InexactFloat64()
	}

	mean, stddev := MeanStdDev(amounts)
	if stddev == 0 || math.IsNaN(stddev) {
		return []models.AnomalyResult{}
	}

	result := make([]models.AnomalyResult, 0)
	for i := range ordered {
		t := &ordered[i]
		z := math.Abs(amounts[i]-mean) / stddev
		if z <= ZScoreThreshold {
			continue
		}
		result = append(result, models.AnomalyResult{
			TransactionID:   t.ID,
			TransactionCode: t.Code,
			Amount:          t.Amount,
			TransactionDate: t.TransactionDate,
			Type:            models.AnomalyTypeUnusualAmount,
			ZScore:          z,
			Severity:        math.Min(z/severityScale, 1),
			Confidence:      math.Min(z/confidenceScale, 1),
			Reasons:         []string{describeDeviation(amounts[i], mean, z)},
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ZScore > result[j].ZScore
	})
	if len(result) > MaxAnomalies {
		result = result[:MaxAnomalies]
	}
	return result
}

func describeDeviation(amount, mean, z float64) string {
	direction := "above"
	if amount < mean {
		direction = "below"
	}
	return fmt.Sprintf("Amount %.2f is %.2f standard deviations %s the window mean of %.2f", amount, z, direction, mean)
}
