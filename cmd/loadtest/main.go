package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mufasadev/finance-analytics/pkg/log"
)

var URL, _ = os.LookupEnv("API_URL")
var PORT, _ = os.LookupEnv("API_PORT")
var apiURL = fmt.Sprintf("http://%s:%s/api/v1", URL, PORT)
var transactionsURL = apiURL + "/transactions"
var statisticsURL = apiURL + "/statistics"

const (
	workers   = 10
	duration  = 30 * time.Second
	approvers = 20
)

var categories = map[string][]string{
	"Income":  {"Sales", "Services", "Interest"},
	"Expense": {"Salary", "Materials", "Rent", "Transport"},
}

type transaction struct {
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	Category        string `json:"category"`
	TransactionDate string `json:"transactionDate"`
	Description     string `json:"description"`
	RecordedBy      string `json:"recordedBy"`
}

type created struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type approvalResult struct {
	Applied bool `json:"applied"`
}

func main() {
	log.Init("finance-analytics-loadtest", log.WithConsoleLogger())
	logger := log.GetLogger()

	var sent, failed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			start := time.Now()
			for time.Since(start) < duration {
				if _, err := sendTransaction(); err != nil {
					failed.Add(1)
					logger.Warn().Err(err).Msg("transaction rejected by the API")
				} else {
					sent.Add(1)
				}
				time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				printStatistics()
			case <-done:
				return
			}
		}
	}()

	wg.Wait()
	close(done)
	logger.Info().Int64("sent", sent.Load()).Int64("failed", failed.Load()).Msg("intake finished")

	raceApprovals()
	printStatistics()
}

// raceApprovals creates one pending transaction and approves it from many clients at once.
// Exactly one approval must be applied.
func raceApprovals() {
	logger := log.GetLogger()

	tx, err := sendTransaction()
	if err != nil {
		logger.Error().Err(err).Msg("failed to create the contested transaction")
		return
	}

	var applied atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(approvers)
	for i := 0; i < approvers; i++ {
		go func() {
			defer wg.Done()
			<-start
			ok, err := approve(tx.ID, uuid.NewString())
			if err != nil {
				logger.Warn().Err(err).Msg("approve request failed")
				return
			}
			if ok {
				applied.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	event := logger.Info()
	if applied.Load() != 1 {
		event = logger.Error()
	}
	event.Str("code", tx.Code).Int64("applied", applied.Load()).Int("approvers", approvers).Msg("approval race finished")
}

func sendTransaction() (*created, error) {
	data, err := json.Marshal(createTransaction())
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(transactionsURL, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}

	var c created
	if err = json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return nil, fmt.Errorf("error decoding transaction response: %w", err)
	}
	return &c, nil
}

func approve(id, approverID string) (bool, error) {
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/%s/approve", transactionsURL, id), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("X-Approver-ID", approverID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}

	var result approvalResult
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}
	return result.Applied, nil
}

func createTransaction() transaction {
	typ := "Expense"
	if rand.Float64() < 0.4 {
		typ = "Income"
	}

	amount := rand.Float64()*1000 + 1
	// an occasional outlier for the anomaly report
	if rand.Float64() < 0.02 {
		amount *= 50
	}

	options := categories[typ]
	return transaction{
		Type:            typ,
		Amount:          fmt.Sprintf("%.2f", amount),
		Category:        options[rand.Intn(len(options))],
		TransactionDate: time.Now().AddDate(0, 0, -rand.Intn(60)).Format("2006-01-02"),
		Description:     "load test",
		RecordedBy:      "loadtest",
	}
}

func printStatistics() {
	logger := log.GetLogger()

	resp, err := http.Get(statisticsURL)
	if err != nil {
		logger.Error().Err(err).Msg("error getting statistics")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Msg("wrong status code")
		return
	}

	var stats struct {
		TotalIncome      string `json:"totalIncome"`
		TotalExpense     string `json:"totalExpense"`
		Balance          string `json:"balance"`
		TransactionCount int    `json:"transactionCount"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		logger.Error().Err(err).Msg("error decoding statistics")
		return
	}

	logger.Info().
		Int("transactions", stats.TransactionCount).
		Str("income", stats.TotalIncome).
		Str("expense", stats.TotalExpense).
		Str("balance", stats.Balance).
		Msg("ledger statistics")
}
