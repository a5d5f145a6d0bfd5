package repositories

import (
	"context"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_project.go -package=mocks -source=project.go ProjectRepository

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) (bool, error)
}
