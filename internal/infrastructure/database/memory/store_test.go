package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransaction(code string, typ models.TransactionType, amount string) *models.Transaction {
	return &models.Transaction{
		Code:            code,
		Amount:          decimal.RequireFromString(amount),
		Type:            typ,
		Category:        "General",
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.TransactionStatusPending,
	}
}

func TestStore_InsertAndGet(t *testing.T) {
	store := NewStore()
	project := store.AddProject(models.Project{Code: "DA001", Name: "Warehouse", Budget: decimal.NewFromInt(1000)})
	employee := store.AddEmployee("Lan")
	repo := store.Transactions()
	ctx := context.Background()

	tx := newTransaction("TC000001", models.TransactionTypeExpense, "10.005")
	tx.Project = &models.Reference{ID: project.ID}
	tx.Employee = &models.Reference{ID: employee}
	require.NoError(t, repo.Insert(ctx, tx))
	assert.NotEmpty(t, tx.ID)

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Warehouse", got.Project.Name)
	assert.Equal(t, "Lan", got.Employee.Name)
	assert.Equal(t, "10.01", got.Amount.StringFixed(2))

	got.Description = "mutated copy"
	again, _ := repo.GetByID(ctx, tx.ID)
	assert.Empty(t, again.Description, "reads return copies")

	missing, err := repo.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Insert(ctx, newTransaction("TC000001", models.TransactionTypeExpense, "1"))
	var dup *apperrors.DuplicateCodeError
	assert.True(t, apperrors.As(err, &dup))
}

func TestStore_CreationOrder(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	repo := store.Transactions()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Insert(context.Background(), newTransaction(fmt.Sprintf("TN%06d", i), models.TransactionTypeIncome, "1")))
	}

	all, err := repo.Find(context.Background(), repositories.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.Before(all[1].CreatedAt))
	assert.True(t, all[1].CreatedAt.Before(all[2].CreatedAt))
	assert.Equal(t, "TN000001", all[0].Code)
}

func TestStore_FindAndDelete(t *testing.T) {
	store := NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	income := newTransaction("TN000001", models.TransactionTypeIncome, "100")
	expense := newTransaction("TC000001", models.TransactionTypeExpense, "50")
	expense.ReferenceNumber = "INV-77"
	cancelled := newTransaction("TC000002", models.TransactionTypeExpense, "70")
	cancelled.Status = models.TransactionStatusCancelled
	for _, tx := range []*models.Transaction{income, expense, cancelled} {
		require.NoError(t, repo.Insert(ctx, tx))
	}

	found, err := repo.Find(ctx, repositories.TransactionFilter{
		Type:            models.TransactionTypeExpense,
		ExcludeStatuses: []models.TransactionStatus{models.TransactionStatusCancelled},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, expense.ID, found[0].ID)

	found, err = repo.Find(ctx, repositories.TransactionFilter{Search: "inv-77"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.Find(ctx, repositories.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	deleted, err := repo.Delete(ctx, income.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, income.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	found, _ = repo.Find(ctx, repositories.TransactionFilter{})
	assert.Len(t, found, 2)
}

func TestStore_MaxCodeSuffix(t *testing.T) {
	store := NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	for _, code := range []string{"TN000007", "TN000012", "TC000099", "TN20240101120000", "TN12"} {
		require.NoError(t, repo.Insert(ctx, newTransaction(code, models.TransactionTypeIncome, "1")))
	}

	max, err := repo.MaxCodeSuffix(ctx, "TN")
	require.NoError(t, err)
	assert.Equal(t, 12, max)

	max, err = repo.MaxCodeSuffix(ctx, "TC")
	require.NoError(t, err)
	assert.Equal(t, 99, max)

	require.NoError(t, repo.Insert(ctx, newTransaction("TC1000000", models.TransactionTypeExpense, "1")))
	max, err = repo.MaxCodeSuffix(ctx, "TC")
	require.NoError(t, err)
	assert.Equal(t, 1000000, max, "suffixes keep counting past six digits")
}

func TestStore_UpdatePending(t *testing.T) {
	store := NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	tx := newTransaction("TC000001", models.TransactionTypeExpense, "50")
	require.NoError(t, repo.Insert(ctx, tx))

	tx.Amount = decimal.NewFromInt(75)
	tx.Category = "Travel"
	updated, err := repo.UpdatePending(ctx, tx)
	require.NoError(t, err)
	assert.True(t, updated)

	got, _ := repo.GetByID(ctx, tx.ID)
	assert.Equal(t, "Travel", got.Category)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(75)))

	applied, err := repo.TransitionFromPending(ctx, repositories.StatusTransition{
		TransactionID: tx.ID,
		To:            models.TransactionStatusApproved,
		ApprovedBy:    "manager",
		At:            time.Now(),
	})
	require.NoError(t, err)
	require.True(t, applied)

	tx.Category = "Late edit"
	updated, err = repo.UpdatePending(ctx, tx)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestStore_ConcurrentApprovals(t *testing.T) {
	store := NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	tx := newTransaction("TC000001", models.TransactionTypeExpense, "500")
	require.NoError(t, repo.Insert(ctx, tx))

	n := 100
	results := make(chan bool, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			to := models.TransactionStatusApproved
			if i%2 == 1 {
				to = models.TransactionStatusRejected
			}
			applied, err := repo.TransitionFromPending(ctx, repositories.StatusTransition{
				TransactionID: tx.ID,
				To:            to,
				ApprovedBy:    fmt.Sprintf("approver-%d", i),
				At:            time.Now(),
				Note:          "decided",
			})
			assert.NoError(t, err)
			results <- applied
		}(i)
	}
	wg.Wait()
	close(results)

	successes := 0
	for applied := range results {
		if applied {
			successes++
		}
	}
	assert.Equal(t, 1, successes)

	got, _ := repo.GetByID(ctx, tx.ID)
	assert.False(t, got.IsPending())
	assert.Equal(t, "decided", got.Description, "the note is appended once")
}

func TestStore_RejectAppendsNote(t *testing.T) {
	store := NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	tx := newTransaction("TC000001", models.TransactionTypeExpense, "500")
	tx.Description = "Office chairs"
	require.NoError(t, repo.Insert(ctx, tx))

	applied, err := repo.TransitionFromPending(ctx, repositories.StatusTransition{
		TransactionID: tx.ID,
		To:            models.TransactionStatusRejected,
		Note:          "Lý do từ chối: no receipt",
	})
	require.NoError(t, err)
	assert.True(t, applied)

	got, _ := repo.GetByID(ctx, tx.ID)
	assert.Equal(t, models.TransactionStatusRejected, got.Status)
	assert.Equal(t, "Office chairs | Lý do từ chối: no receipt", got.Description)
	assert.Nil(t, got.ApprovedBy)
	assert.Nil(t, got.ApprovedAt)
}

func TestStore_Projects(t *testing.T) {
	store := NewStore()
	p := store.AddProject(models.Project{Code: "DA001", Name: "Warehouse", Budget: decimal.NewFromInt(1000)})
	repo := store.Projects()
	ctx := context.Background()

	ok, err := repo.UpdateBudget(ctx, p.ID, decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Budget.Equal(decimal.NewFromInt(2000)))

	ok, err = repo.UpdateBudget(ctx, "missing", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := repo.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
