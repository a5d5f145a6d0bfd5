package memory

import (
	"context"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var codeSuffix = regexp.MustCompile(`^[0-9]{6,12}$`)

// Store is a process-local ledger. One mutex guards every map, so TransitionFromPending
// is a compare-and-swap exactly like the conditional UPDATE of the Postgres store.
type Store struct {
	mu           sync.Mutex
	transactions []*models.Transaction
	byID         map[string]*models.Transaction
	projects     map[string]*models.Project
	employees    map[string]string
	customers    map[string]string
	now          func() time.Time
	lastCreated  time.Time
	logger       *zerolog.Logger
}

func NewStore() *Store {
	l := log.GetLogger()
	return &Store{
		byID:      make(map[string]*models.Transaction),
		projects:  make(map[string]*models.Project),
		employees: make(map[string]string),
		customers: make(map[string]string),
		now:       time.Now,
		logger:    &l,
	}
}

// Transactions returns the store as a TransactionRepository.
func (s *Store) Transactions() repositories.TransactionRepository {
	return &transactionRepository{s}
}

// Projects returns the store as a ProjectRepository.
func (s *Store) Projects() repositories.ProjectRepository {
	return &projectRepository{s}
}

// AddProject registers a project, generating an id when it has none.
func (s *Store) AddProject(p models.Project) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	stored := p
	s.projects[p.ID] = &stored
	return p
}

// AddEmployee registers an employee display name and returns its id.
func (s *Store) AddEmployee(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.employees[id] = name
	return id
}

// AddCustomer registers a customer display name and returns its id.
func (s *Store) AddCustomer(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.customers[id] = name
	return id
}

// nextCreatedAt keeps CreatedAt strictly increasing so creation order survives equal clocks.
func (s *Store) nextCreatedAt() time.Time {
	t := s.now()
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Microsecond)
	}
	s.lastCreated = t
	return t
}

// view copies a stored transaction and resolves reference display names.
func (s *Store) view(t *models.Transaction) models.Transaction {
	out := *t
	if t.Project != nil {
		name := ""
		if p, ok := s.projects[t.Project.ID]; ok {
			name = p.Name
		}
		out.Project = &models.Reference{ID: t.Project.ID, Name: name}
	}
	if t.Employee != nil {
		out.Employee = &models.Reference{ID: t.Employee.ID, Name: s.employees[t.Employee.ID]}
	}
	if t.Customer != nil {
		out.Customer = &models.Reference{ID: t.Customer.ID, Name: s.customers[t.Customer.ID]}
	}
	if t.ApprovedBy != nil {
		v := *t.ApprovedBy
		out.ApprovedBy = &v
	}
	if t.ApprovedAt != nil {
		v := *t.ApprovedAt
		out.ApprovedAt = &v
	}
	return out
}

func refOnly(r *models.Reference) *models.Reference {
	if r == nil {
		return nil
	}
	return &models.Reference{ID: r.ID}
}

type transactionRepository struct {
	s *Store
}

func (r *transactionRepository) Find(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStorageError("find transactions", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]models.Transaction, 0)
	for _, t := range r.s.transactions {
		if !filter.Matches(t) {
			continue
		}
		result = append(result, r.s.view(t))
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.byID[id]
	if !ok {
		return nil, nil
	}
	v := r.s.view(t)
	return &v, nil
}

func (r *transactionRepository) GetByCode(ctx context.Context, code string) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.transactions {
		if t.Code == code {
			v := r.s.view(t)
			return &v, nil
		}
	}
	return nil, nil
}

func (r *transactionRepository) Insert(ctx context.Context, transaction *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.transactions {
		if t.Code == transaction.Code {
			return apperrors.NewDuplicateCodeError(transaction.Code)
		}
	}

	transaction.ID = uuid.New().String()
	transaction.CreatedAt = r.s.nextCreatedAt()

	stored := *transaction
	stored.Amount = transaction.Amount.Round(2)
	stored.Project = refOnly(transaction.Project)
	stored.Employee = refOnly(transaction.Employee)
	stored.Customer = refOnly(transaction.Customer)

	r.s.transactions = append(r.s.transactions, &stored)
	r.s.byID[stored.ID] = &stored
	return nil
}

func (r *transactionRepository) UpdatePending(ctx context.Context, transaction *models.Transaction) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.byID[transaction.ID]
	if !ok || !t.IsPending() {
		return false, nil
	}

	t.Amount = transaction.Amount.Round(2)
	t.Category = transaction.Category
	t.TransactionDate = transaction.TransactionDate
	t.Description = transaction.Description
	t.PaymentMethod = transaction.PaymentMethod
	t.ReferenceNumber = transaction.ReferenceNumber
	t.Project = refOnly(transaction.Project)
	t.Employee = refOnly(transaction.Employee)
	t.Customer = refOnly(transaction.Customer)
	return true, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byID[id]; !ok {
		return false, nil
	}
	delete(r.s.byID, id)
	for i, t := range r.s.transactions {
		if t.ID == id {
			r.s.transactions = append(r.s.transactions[:i], r.s.transactions[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *transactionRepository) MaxCodeSuffix(ctx context.Context, prefix string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	max := 0
	for _, t := range r.s.transactions {
		if len(t.Code) <= len(prefix) || t.Code[:len(prefix)] != prefix {
			continue
		}
		suffix := t.Code[len(prefix):]
		if !codeSuffix.MatchString(suffix) {
			continue
		}
		n, _ := strconv.Atoi(suffix)
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *transactionRepository) TransitionFromPending(ctx context.Context, transition repositories.StatusTransition) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.byID[transition.TransactionID]
	if !ok || !t.IsPending() {
		return false, nil
	}

	t.Status = transition.To
	if transition.ApprovedBy != "" {
		approvedBy, at := transition.ApprovedBy, transition.At
		t.ApprovedBy = &approvedBy
		t.ApprovedAt = &at
	}
	t.Description = repositories.AppendNote(t.Description, transition.Note)

	r.s.logger.Debug().
		Str("transaction_id", t.ID).
		Str("status", string(t.Status)).
		Msg("transaction transitioned")
	return true, nil
}

type projectRepository struct {
	s *Store
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *projectRepository) UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok {
		return false, nil
	}
	p.Budget = budget.Round(2)
	return true, nil
}
