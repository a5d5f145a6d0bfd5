package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/postgresql"
	"github.com/shopspring/decimal"
)

type ProjectRepositoryImpl struct {
	db postgresql.Client
}

func NewProjectRepositoryImpl(db postgresql.Client) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{
		db: db,
	}
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	project := &models.Project{}
	err := r.db.QueryRow(
		ctx,
		"SELECT id, code, name, budget FROM projects WHERE id = $1",
		id,
	).Scan(&project.ID, &project.Code, &project.Name, &project.Budget)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("get project", err)
	}

	return project, nil
}

func (r *ProjectRepositoryImpl) UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(
		ctx,
		"UPDATE projects SET budget = $1::NUMERIC(18,2) WHERE id = $2",
		budget,
		id,
	)
	if err != nil {
		return false, apperrors.NewStorageError("update project budget", err)
	}
	return tag.RowsAffected() == 1, nil
}
