package interactor

import (
	"context"
	"sort"

	"github.com/mufasadev/finance-analytics/internal/domain/analytics"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MaxComparedProjects bounds CompareProjectPerformance.
const MaxComparedProjects = 50

type ProjectInteractor struct {
	projectRepository     repositories.ProjectRepository
	transactionRepository repositories.TransactionRepository
	logger                *zerolog.Logger
}

func NewProjectInteractor(projectRepository repositories.ProjectRepository, transactionRepository repositories.TransactionRepository) *ProjectInteractor {
	l := log.GetLogger()
	return &ProjectInteractor{
		projectRepository:     projectRepository,
		transactionRepository: transactionRepository,
		logger:                &l,
	}
}

func (i *ProjectInteractor) GetProjectFinanceStatistics(ctx context.Context, projectID string) (models.ProjectFinanceStatistics, error) {
	if projectID == "" {
		return models.ProjectFinanceStatistics{}, apperrors.NewValidationError(apperrors.ErrProjectIDRequired)
	}

	project := i.loadProject(ctx, projectID)
	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "project finance",
		repositories.TransactionFilter{ProjectID: projectID})
	return analytics.ProjectFinance(project, transactions), nil
}

// CheckProjectBudget classifies the project's spend against its budget.
func (i *ProjectInteractor) CheckProjectBudget(ctx context.Context, projectID string) (models.BudgetCheckResult, error) {
	finance, err := i.GetProjectFinanceStatistics(ctx, projectID)
	if err != nil {
		return models.BudgetCheckResult{}, err
	}
	return analytics.CheckBudget(finance), nil
}

// UpdateProjectBudget overwrites the budget. Spend already recorded is not checked.
func (i *ProjectInteractor) UpdateProjectBudget(ctx context.Context, projectID string, budget decimal.Decimal) error {
	if projectID == "" {
		return apperrors.NewValidationError(apperrors.ErrProjectIDRequired)
	}
	if budget.IsNegative() {
		return apperrors.NewValidationError(apperrors.ErrNegativeBudget)
	}

	updated, err := i.projectRepository.UpdateBudget(ctx, projectID, budget)
	if err != nil {
		i.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to update project budget")
		return err
	}
	if !updated {
		return apperrors.NewNotFoundError("project", projectID)
	}

	i.logger.Info().
		Str("project_id", projectID).
		Str("budget", budget.StringFixed(2)).
		Msg("project budget updated")
	return nil
}

func (i *ProjectInteractor) CalculateROI(ctx context.Context, projectID string) (models.ROIResult, error) {
	if projectID == "" {
		return models.ROIResult{}, apperrors.NewValidationError(apperrors.ErrProjectIDRequired)
	}

	transactions := readTransactions(ctx, i.transactionRepository, i.logger, "project roi",
		repositories.TransactionFilter{ProjectID: projectID})
	return analytics.ROI(projectID, transactions), nil
}

// CompareProjectPerformance ranks the given projects by ROI, best first.
// Duplicate ids are compared once.
func (i *ProjectInteractor) CompareProjectPerformance(ctx context.Context, projectIDs []string) (models.PerformanceComparison, error) {
	if len(projectIDs) > MaxComparedProjects {
		return models.PerformanceComparison{}, apperrors.NewValidationErrorf("at most %d projects can be compared", MaxComparedProjects)
	}

	seen := make(map[string]struct{}, len(projectIDs))
	results := make([]models.ROIResult, 0, len(projectIDs))
	for _, id := range projectIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}

		roi, err := i.CalculateROI(ctx, id)
		if err != nil {
			return models.PerformanceComparison{}, err
		}
		results = append(results, roi)
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].ROI.GreaterThan(results[b].ROI)
	})
	return models.PerformanceComparison{Projects: results}, nil
}

// loadProject falls back to a zero-budget project when it is unknown or the store fails.
func (i *ProjectInteractor) loadProject(ctx context.Context, projectID string) models.Project {
	project, err := i.projectRepository.GetByID(ctx, projectID)
	if err != nil {
		i.logger.Error().Err(err).Str("project_id", projectID).Msg(apperrors.ErrFailedLoadReport)
	}
	if project == nil {
		return models.Project{ID: projectID, Budget: decimal.Zero}
	}
	return *project
}
