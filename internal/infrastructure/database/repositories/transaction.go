package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/mufasadev/finance-analytics/pkg/postgresql"
	"github.com/rs/zerolog"
)

type TransactionRepositoryImpl struct {
	db     postgresql.Client
	logger *zerolog.Logger
}

// NewTransactionRepositoryImpl creates new instance of TransactionRepositoryImpl.
func NewTransactionRepositoryImpl(db postgresql.Client) repositories.TransactionRepository {
	l := log.GetLogger()
	return &TransactionRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

const selectTransactions = `
SELECT t.id::text, t.code, t.amount, t.type, t.category, t.transaction_date, t.description,
       t.payment_method, t.reference_number, t.status,
       t.project_id::text, p.name, t.employee_id::text, e.name, t.customer_id::text, c.name,
       t.recorded_by, t.approved_by, t.approved_at, t.created_at
FROM transactions t
LEFT JOIN projects p ON p.id = t.project_id
LEFT JOIN employees e ON e.id = t.employee_id
LEFT JOIN customers c ON c.id = t.customer_id`

// Find returns the transactions matching filter in creation order.
func (r *TransactionRepositoryImpl) Find(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, error) {
	where, args := buildWhere(filter)
	query := selectTransactions + where + " ORDER BY t.created_at, t.seq"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var result []models.Transaction
	err := postgresql.InTx(ctx, r.db, pgx.RepeatableRead, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = make([]models.Transaction, 0)
		for rows.Next() {
			t, err := scanTransaction(rows)
			if err != nil {
				return err
			}
			result = append(result, *t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperrors.NewStorageError("find transactions", err)
	}

	return result, nil
}

// GetByID returns transaction by id, or nil when there is none.
func (r *TransactionRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get transaction by id", selectTransactions+" WHERE t.id = $1", id)
}

// GetByCode returns transaction by its human-readable code, or nil when there is none.
func (r *TransactionRepositoryImpl) GetByCode(ctx context.Context, code string) (*models.Transaction, error) {
	return r.getOne(ctx, "get transaction by code", selectTransactions+" WHERE t.code = $1", code)
}

func (r *TransactionRepositoryImpl) getOne(ctx context.Context, op, query string, arg interface{}) (*models.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError(op, err)
	}
	return t, nil
}

const insertTransaction = `
INSERT INTO transactions (id, code, amount, type, category, transaction_date, description,
                          payment_method, reference_number, status, project_id, employee_id,
                          customer_id, recorded_by)
VALUES ($1, $2, $3::NUMERIC(18,2), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING created_at`

// Insert stores a new transaction, assigning its id when empty and its creation time.
func (r *TransactionRepositoryImpl) Insert(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx, insertTransaction,
		t.ID,
		t.Code,
		t.Amount,
		string(t.Type),
		t.Category,
		t.TransactionDate,
		t.Description,
		t.PaymentMethod,
		t.ReferenceNumber,
		string(t.Status),
		refArg(t.Project),
		refArg(t.Employee),
		refArg(t.Customer),
		t.RecordedBy,
	).Scan(&t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateCodeError(t.Code)
		}
		return apperrors.NewStorageError("insert transaction", err)
	}

	return nil
}

const updatePendingTransaction = `
UPDATE transactions
SET code = $2, amount = $3::NUMERIC(18,2), type = $4, category = $5, transaction_date = $6,
    description = $7, payment_method = $8, reference_number = $9,
    project_id = $10, employee_id = $11, customer_id = $12
WHERE id = $1 AND status = $13`

// UpdatePending overwrites the editable fields of a transaction that is still pending.
func (r *TransactionRepositoryImpl) UpdatePending(ctx context.Context, t *models.Transaction) (bool, error) {
	if _, err := uuid.Parse(t.ID); err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(ctx, updatePendingTransaction,
		t.ID,
		t.Code,
		t.Amount,
		string(t.Type),
		t.Category,
		t.TransactionDate,
		t.Description,
		t.PaymentMethod,
		t.ReferenceNumber,
		refArg(t.Project),
		refArg(t.Employee),
		refArg(t.Customer),
		string(models.TransactionStatusPending),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperrors.NewDuplicateCodeError(t.Code)
		}
		return false, apperrors.NewStorageError("update transaction", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes a transaction and reports whether it existed.
func (r *TransactionRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return false, apperrors.NewStorageError("delete transaction", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MaxCodeSuffix returns the highest numeric suffix of six to twelve digits used with
// prefix, or 0. Timestamp-based fallback codes are longer and never take part.
func (r *TransactionRepositoryImpl) MaxCodeSuffix(ctx context.Context, prefix string) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM $2) AS BIGINT)), 0)
FROM transactions
WHERE code ~ ('^' || $1::text || '[0-9]{6,12}$')`,
		prefix, len(prefix)+1,
	).Scan(&max)
	if err != nil {
		return 0, apperrors.NewStorageError("max code suffix", err)
	}

	return max, nil
}

const transitionFromPending = `
UPDATE transactions
SET status      = $2,
    approved_by = COALESCE(NULLIF($3::text, ''), approved_by),
    approved_at = CASE WHEN $3::text = '' THEN approved_at ELSE $4::timestamptz END,
    description = CASE
                    WHEN $5::text = '' THEN description
                    WHEN description = '' THEN $5::text
                    ELSE description || $6::text || $5::text
                  END
WHERE id = $1 AND status = $7`

// TransitionFromPending moves a pending transaction to a new status in a single
// conditional statement. It reports false when the row is missing or no longer pending.
func (r *TransactionRepositoryImpl) TransitionFromPending(ctx context.Context, s repositories.StatusTransition) (bool, error) {
	if _, err := uuid.Parse(s.TransactionID); err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(ctx, transitionFromPending,
		s.TransactionID,
		string(s.To),
		s.ApprovedBy,
		s.At,
		s.Note,
		repositories.DescriptionSeparator,
		string(models.TransactionStatusPending),
	)
	if err != nil {
		return false, apperrors.NewStorageError("transition transaction status", err)
	}

	applied := tag.RowsAffected() == 1
	r.logger.Debug().
		Str("transaction_id", s.TransactionID).
		Str("to", string(s.To)).
		Bool("applied", applied).
		Msg("status transition")

	return applied, nil
}

func buildWhere(f repositories.TransactionFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.DateFrom != nil {
		add("t.transaction_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("t.transaction_date <= $%d", *f.DateTo)
	}
	if f.ProjectID != "" {
		add("t.project_id::text = $%d", f.ProjectID)
	}
	if f.EmployeeID != "" {
		add("t.employee_id::text = $%d", f.EmployeeID)
	}
	if f.CustomerID != "" {
		add("t.customer_id::text = $%d", f.CustomerID)
	}
	if f.Category != "" {
		add("t.category = $%d", f.Category)
	}
	if f.Type != "" {
		add("t.type = $%d", string(f.Type))
	}
	if len(f.Statuses) > 0 {
		add("t.status = ANY($%d)", statusStrings(f.Statuses))
	}
	if len(f.ExcludeStatuses) > 0 {
		add("NOT (t.status = ANY($%d))", statusStrings(f.ExcludeStatuses))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(t.code ILIKE $%d OR t.description ILIKE $%d OR t.reference_number ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func statusStrings(statuses []models.TransactionStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		t                        models.Transaction
		txType, status           string
		projectID, projectName   *string
		employeeID, employeeName *string
		customerID, customerName *string
		approvedBy               *string
		approvedAt               *time.Time
	)

	err := row.Scan(
		&t.ID, &t.Code, &t.Amount, &txType, &t.Category, &t.TransactionDate, &t.Description,
		&t.PaymentMethod, &t.ReferenceNumber, &status,
		&projectID, &projectName, &employeeID, &employeeName, &customerID, &customerName,
		&t.RecordedBy, &approvedBy, &approvedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Type, err = models.ParseTransactionType(txType); err != nil {
		return nil, err
	}
	if t.Status, err = models.ParseTransactionStatus(status); err != nil {
		return nil, err
	}
	t.Project = toRef(projectID, projectName)
	t.Employee = toRef(employeeID, employeeName)
	t.Customer = toRef(customerID, customerName)
	t.ApprovedBy = approvedBy
	t.ApprovedAt = approvedAt

	return &t, nil
}

func toRef(id, name *string) *models.Reference {
	if id == nil {
		return nil
	}
	ref := &models.Reference{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	return ref
}

func refArg(r *models.Reference) interface{} {
	if r == nil {
		return nil
	}
	return r.ID
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == repositories.UniqueViolationError
}
