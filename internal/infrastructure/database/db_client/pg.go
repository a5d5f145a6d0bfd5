package db_client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	decimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufasadev/finance-analytics/internal/config"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/migrations"
	"github.com/mufasadev/finance-analytics/pkg/postgresql"
)

type PGClient struct {
	cfg config.PostgreSQL
}

func NewPGClient(cfg config.PostgreSQL) *PGClient {
	return &PGClient{cfg: cfg}
}

// Connect connects to the database and returns a pgxpool.Pool.
func (c *PGClient) Connect() (*pgxpool.Pool, error) {
	pgxConfig, err := pgxpool.ParseConfig(c.cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	// Register decimal type
	pgxConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		decimal.Register(conn.TypeMap())
		return nil
	}

	maxAttempts, err := strconv.Atoi(c.cfg.MaxConnAttempts)
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi: %w", err)
	}

	db, err := postgresql.NewClient(pgxConfig, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("postgresql.NewClient: %w", err)
	}

	return db, nil
}

// Migrate applies every pending schema migration.
func (c *PGClient) Migrate() error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, c.cfg.MigrationURL())
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate.Up: %w", err)
	}

	return nil
}
