package di

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/api/handlers"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	pgrepositories "github.com/mufasadev/finance-analytics/internal/infrastructure/database/repositories"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
)

type Container struct {
	TransactionHandler *handlers.TransactionHandler
	StatisticsHandler  *handlers.StatisticsHandler
	ApprovalHandler    *handlers.ApprovalHandler
	ProjectHandler     *handlers.ProjectHandler
	ReportHandler      *handlers.ReportHandler
}

// Stores bundles the two repositories every interactor is built from.
type Stores struct {
	Transactions repositories.TransactionRepository
	Projects     repositories.ProjectRepository
}

// PostgresStores returns the Postgres-backed repositories.
func PostgresStores(db *pgxpool.Pool) Stores {
	return Stores{
		Transactions: pgrepositories.NewTransactionRepositoryImpl(db),
		Projects:     pgrepositories.NewProjectRepositoryImpl(db),
	}
}

// MemoryStores returns repositories backed by store.
func MemoryStores(store *memory.Store) Stores {
	return Stores{
		Transactions: store.Transactions(),
		Projects:     store.Projects(),
	}
}

// NewContainer creates a new Container instance.
func NewContainer(stores Stores, publisher interactor.DecisionPublisher) *Container {
	statisticsInteractor := interactor.NewStatisticsInteractor(stores.Transactions)
	anomalyInteractor := interactor.NewAnomalyInteractor(stores.Transactions)
	projectInteractor := interactor.NewProjectInteractor(stores.Projects, stores.Transactions)
	approvalInteractor := interactor.NewApprovalInteractor(stores.Transactions, publisher)

	codeGenerator := interactor.NewCodeGenerator(stores.Transactions)
	transactionInteractor := interactor.NewTransactionInteractor(stores.Transactions, codeGenerator)

	reportInteractor := interactor.NewReportInteractor(statisticsInteractor, anomalyInteractor, projectInteractor, stores.Transactions)

	return &Container{
		TransactionHandler: handlers.NewTransactionHandler(transactionInteractor),
		StatisticsHandler:  handlers.NewStatisticsHandler(statisticsInteractor, anomalyInteractor),
		ApprovalHandler:    handlers.NewApprovalHandler(approvalInteractor),
		ProjectHandler:     handlers.NewProjectHandler(projectInteractor),
		ReportHandler:      handlers.NewReportHandler(reportInteractor),
	}
}
