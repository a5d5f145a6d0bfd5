package interactor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	repomocks "github.com/mufasadev/finance-analytics/internal/domain/repositories/mocks"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalInteractor_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	approved := repositories.StatusTransition{
		TransactionID: "tx-1",
		To:            models.TransactionStatusApproved,
		ApprovedBy:    "manager-7",
		At:            testNow,
	}

	tests := []struct {
		name          string
		transactionID string
		approverID    string
		setup         func(repo *repomocks.MockTransactionRepository, publisher *mocks.MockDecisionPublisher)
		want          bool
		wantErr       func(error) bool
	}{
		{
			name:          "pending transaction is approved and announced",
			transactionID: "tx-1",
			approverID:    " manager-7 ",
			setup: func(repo *repomocks.MockTransactionRepository, publisher *mocks.MockDecisionPublisher) {
				repo.EXPECT().TransitionFromPending(ctx, approved).Return(true, nil)
				publisher.EXPECT().PublishDecision(ctx, dtos.TransactionDecision{
					TransactionID: "tx-1",
					Status:        models.TransactionStatusApproved,
					ApprovedBy:    "manager-7",
					DecidedAt:     testNow,
				}).Return(nil)
			},
			want: true,
		},
		{
			name:          "already decided is a no-op",
			transactionID: "tx-1",
			approverID:    "manager-7",
			setup: func(repo *repomocks.MockTransactionRepository, publisher *mocks.MockDecisionPublisher) {
				repo.EXPECT().TransitionFromPending(ctx, approved).Return(false, nil)
			},
			want: false,
		},
		{
			name:          "publish failure does not undo the approval",
			transactionID: "tx-1",
			approverID:    "manager-7",
			setup: func(repo *repomocks.MockTransactionRepository, publisher *mocks.MockDecisionPublisher) {
				repo.EXPECT().TransitionFromPending(ctx, approved).Return(true, nil)
				publisher.EXPECT().PublishDecision(ctx, gomock.Any()).Return(errors.New("broker down"))
			},
			want: true,
		},
		{
			name:          "store failure propagates",
			transactionID: "tx-1",
			approverID:    "manager-7",
			setup: func(repo *repomocks.MockTransactionRepository, publisher *mocks.MockDecisionPublisher) {
				repo.EXPECT().TransitionFromPending(ctx, approved).
					Return(false, apperrors.NewStorageError("transition transaction status", errors.New("timeout")))
			},
			wantErr: func(err error) bool {
				var storageErr *apperrors.StorageError
				return apperrors.As(err, &storageErr)
			},
		},
		{
			name:          "missing approver never reaches the store",
			transactionID: "tx-1",
			approverID:    "  ",
			setup:         func(*repomocks.MockTransactionRepository, *mocks.MockDecisionPublisher) {},
			wantErr: func(err error) bool {
				var validationErr *apperrors.ValidationError
				return apperrors.As(err, &validationErr)
			},
		},
		{
			name:          "over-long approver never reaches the store",
			transactionID: "tx-1",
			approverID:    strings.Repeat("a", MaxActorLength+1),
			setup:         func(*repomocks.MockTransactionRepository, *mocks.MockDecisionPublisher) {},
			wantErr: func(err error) bool {
				var validationErr *apperrors.ValidationError
				return apperrors.As(err, &validationErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repomocks.NewMockTransactionRepository(ctrl)
			publisher := mocks.NewMockDecisionPublisher(ctrl)
			tt.setup(repo, publisher)

			i := NewApprovalInteractor(repo, publisher)
			i.now = fixedClock

			got, err := i.Approve(ctx, tt.transactionID, tt.approverID)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApprovalInteractor_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := repomocks.NewMockTransactionRepository(ctrl)
	publisher := mocks.NewMockDecisionPublisher(ctrl)
	i := NewApprovalInteractor(repo, publisher)
	i.now = fixedClock

	repo.EXPECT().TransitionFromPending(ctx, repositories.StatusTransition{
		TransactionID: "tx-2",
		To:            models.TransactionStatusRejected,
		Note:          "Lý do từ chối: duplicate invoice",
	}).Return(true, nil)
	publisher.EXPECT().PublishDecision(ctx, dtos.TransactionDecision{
		TransactionID: "tx-2",
		Status:        models.TransactionStatusRejected,
		Reason:        "duplicate invoice",
		DecidedAt:     testNow,
	}).Return(nil)

	applied, err := i.Reject(ctx, "tx-2", "duplicate invoice")
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = i.Reject(ctx, "tx-2", "")
	var validationErr *apperrors.ValidationError
	assert.True(t, apperrors.As(err, &validationErr))
}

func TestApprovalInteractor_ConcurrentApprovals(t *testing.T) {
	store := memory.NewStore()
	txs := insert(t, store, seed{
		code:   "TC000001",
		typ:    models.TransactionTypeExpense,
		amount: "1500",
		date:   date(2024, 6, 1),
		status: models.TransactionStatusPending,
	})
	i := NewApprovalInteractor(store.Transactions(), nil)

	n := 64
	var successes int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(n)
	for k := 0; k < n; k++ {
		go func() {
			defer wg.Done()
			applied, err := i.Approve(context.Background(), txs[0].ID, "manager")
			assert.NoError(t, err)
			if applied {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	got, err := store.Transactions().GetByID(context.Background(), txs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusApproved, got.Status)

	applied, err := i.Reject(context.Background(), txs[0].ID, "too late")
	require.NoError(t, err)
	assert.False(t, applied, "approved transactions cannot be rejected")
}
