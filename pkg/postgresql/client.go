package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mufasadev/finance-analytics/pkg/util/repeat"
)

const ClientTimeout = 5 * time.Second

// maxSerializationRetries bounds the retry loop for SQLSTATE 40001.
const maxSerializationRetries = 10

const serializationFailure = "40001"

// Client is the subset of pgxpool.Pool the repositories use.
type Client interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// NewClient opens a pool and pings it, retrying up to maxConnAttempts times.
func NewClient(cfg *pgxpool.Config, maxConnAttempts int) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := repeat.Repeat(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), ClientTimeout)
		defer cancel()

		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}

		if err = p.Ping(ctx); err != nil {
			p.Close()
			return err
		}

		pool = p
		return nil
	}, maxConnAttempts, ClientTimeout)

	if err != nil {
		return nil, err
	}

	return pool, nil
}

// IsSerializationError reports whether err is a serialization failure worth retrying.
func IsSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == serializationFailure
}

// InTx runs f inside a transaction with the given isolation level, retrying the
// whole unit on serialization failures.
func InTx(ctx context.Context, db Client, iso pgx.TxIsoLevel, f func(tx pgx.Tx) error) error {
	return repeat.Until(func() error {
		tx, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: iso})
		if err != nil {
			return err
		}

		if err = f(tx); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}

		if err = tx.Commit(ctx); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		return nil
	}, IsSerializationError, maxSerializationRetries)
}
