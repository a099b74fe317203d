// Package testutils provides the in-memory store and UnitOfWork used by
// service and handler tests. Do serializes units behind one mutex and rolls
// back by snapshot, mirroring the isolation the real store gives the
// posting engine without needing a database.
package testutils

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"finbook/pkg/domain"
	"finbook/pkg/dto"
	"finbook/pkg/repository"
	accountrepo "finbook/pkg/repository/account"
	nsrepo "finbook/pkg/repository/namespace"
	projectrepo "finbook/pkg/repository/project"
	raterepo "finbook/pkg/repository/rate"
	txrepo "finbook/pkg/repository/transaction"
	userrepo "finbook/pkg/repository/user"

	"github.com/google/uuid"
)

// MemStore is the in-memory backing state. Fields are exported so tests can
// seed and assert directly.
type MemStore struct {
	mu sync.Mutex

	Users      map[uuid.UUID]dto.UserRead
	Namespaces map[uuid.UUID]dto.NamespaceRead
	Accounts   map[uuid.UUID]dto.AccountRead
	Rates      map[string]dto.RateRead
	TxRows     []dto.TransactionRead
	txSeq      []int
	nextSeq    int

	Projects map[uuid.UUID]dto.ProjectRead
	Budgets  map[uuid.UUID]dto.BudgetCreate
	Expenses []dto.ExpenseCreate
	Salaries []dto.SalaryPaymentCreate

	// FailTxCreate makes transaction inserts fail, for rollback tests.
	FailTxCreate bool
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		Users:      make(map[uuid.UUID]dto.UserRead),
		Namespaces: make(map[uuid.UUID]dto.NamespaceRead),
		Accounts:   make(map[uuid.UUID]dto.AccountRead),
		Rates:      make(map[string]dto.RateRead),
		Projects:   make(map[uuid.UUID]dto.ProjectRead),
		Budgets:    make(map[uuid.UUID]dto.BudgetCreate),
	}
}

// NewUow returns a UnitOfWork bound to the store.
func NewUow(store *MemStore) repository.UnitOfWork {
	return &memUow{store: store}
}

// SeedUser inserts a user and returns its id.
func (s *MemStore) SeedUser(username, email, passwordHash, role string) uuid.UUID {
	id := uuid.New()
	s.Users[id] = dto.UserRead{
		ID: id, Username: username, Email: email, Password: passwordHash, Role: role,
	}
	return id
}

// SeedNamespace inserts a namespace and returns its id.
func (s *MemStore) SeedNamespace(userID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	s.Namespaces[id] = dto.NamespaceRead{ID: id, UserID: userID, Name: name}
	return id
}

// SeedAccount inserts an account and returns its id.
func (s *MemStore) SeedAccount(userID, namespaceID uuid.UUID, name, cur string, balanceMinor int64) uuid.UUID {
	id := uuid.New()
	s.Accounts[id] = dto.AccountRead{
		ID: id, UserID: userID, NamespaceID: namespaceID,
		Name: name, Currency: cur, BalanceMinor: balanceMinor,
	}
	return id
}

// SeedProject inserts a project and returns its id.
func (s *MemStore) SeedProject(ownerID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	s.Projects[id] = dto.ProjectRead{ID: id, OwnerID: ownerID, Name: name}
	return id
}

func rateKey(userID uuid.UUID, from, to string) string {
	return userID.String() + "|" + strings.ToUpper(from) + "|" + strings.ToUpper(to)
}

type snapshot struct {
	users      map[uuid.UUID]dto.UserRead
	namespaces map[uuid.UUID]dto.NamespaceRead
	accounts   map[uuid.UUID]dto.AccountRead
	rates      map[string]dto.RateRead
	txRows     int
	projects   map[uuid.UUID]dto.ProjectRead
	budgets    map[uuid.UUID]dto.BudgetCreate
	expenses   int
	salaries   int
}

func (s *MemStore) snapshot() snapshot {
	return snapshot{
		users:      cloneMap(s.Users),
		namespaces: cloneMap(s.Namespaces),
		accounts:   cloneMap(s.Accounts),
		rates:      cloneMap(s.Rates),
		txRows:     len(s.TxRows),
		projects:   cloneMap(s.Projects),
		budgets:    cloneMap(s.Budgets),
		expenses:   len(s.Expenses),
		salaries:   len(s.Salaries),
	}
}

func (s *MemStore) restore(snap snapshot) {
	s.Users = snap.users
	s.Namespaces = snap.namespaces
	s.Accounts = snap.accounts
	s.Rates = snap.rates
	s.TxRows = s.TxRows[:snap.txRows]
	s.txSeq = s.txSeq[:snap.txRows]
	s.Projects = snap.projects
	s.Budgets = snap.budgets
	s.Expenses = s.Expenses[:snap.expenses]
	s.Salaries = s.Salaries[:snap.salaries]
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memUow struct {
	store *MemStore
}

func (u *memUow) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	if err := fn(u); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *memUow) GetRepository(repoType reflect.Type) (any, error) {
	return nil, errors.New("repository not registered: " + repoType.String())
}

func (u *memUow) AccountRepository() (accountrepo.Repository, error) {
	return &memAccountRepo{store: u.store}, nil
}

func (u *memUow) NamespaceRepository() (nsrepo.Repository, error) {
	return &memNamespaceRepo{store: u.store}, nil
}

func (u *memUow) RateRepository() (raterepo.Repository, error) {
	return &memRateRepo{store: u.store}, nil
}

func (u *memUow) TransactionRepository() (txrepo.Repository, error) {
	return &memTxRepo{store: u.store}, nil
}

func (u *memUow) UserRepository() (userrepo.Repository, error) {
	return &memUserRepo{store: u.store}, nil
}

func (u *memUow) ProjectRepository() (projectrepo.Repository, error) {
	return &memProjectRepo{store: u.store}, nil
}

type memAccountRepo struct {
	store *MemStore
}

func (r *memAccountRepo) Create(_ context.Context, create dto.AccountCreate) error {
	for _, a := range r.store.Accounts {
		if a.UserID == create.UserID && a.NamespaceID == create.NamespaceID && a.Name == create.Name {
			return domain.ErrConflict
		}
	}
	r.store.Accounts[create.ID] = dto.AccountRead{
		ID:           create.ID,
		UserID:       create.UserID,
		NamespaceID:  create.NamespaceID,
		Name:         create.Name,
		Currency:     create.Currency,
		BalanceMinor: create.BalanceMinor,
	}
	return nil
}

func (r *memAccountRepo) Get(_ context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	a, ok := r.store.Accounts[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *memAccountRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	return r.Get(ctx, userID, id)
}

func (r *memAccountRepo) GetByName(_ context.Context, userID, namespaceID uuid.UUID, name string) (*dto.AccountRead, error) {
	for _, a := range r.store.Accounts {
		if a.UserID == userID && a.NamespaceID == namespaceID && a.Name == name {
			out := a
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAccountRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var out []*dto.AccountRead
	for _, a := range r.store.Accounts {
		if a.UserID == userID {
			row := a
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memAccountRepo) ListByNamespace(_ context.Context, userID, namespaceID uuid.UUID) ([]*dto.AccountRead, error) {
	var out []*dto.AccountRead
	for _, a := range r.store.Accounts {
		if a.UserID == userID && a.NamespaceID == namespaceID {
			row := a
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memAccountRepo) Update(_ context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	a, ok := r.store.Accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		for _, other := range r.store.Accounts {
			if other.ID != id && other.UserID == a.UserID &&
				other.NamespaceID == a.NamespaceID && other.Name == *update.Name {
				return domain.ErrConflict
			}
		}
		a.Name = *update.Name
	}
	if update.BalanceMinor != nil {
		a.BalanceMinor = *update.BalanceMinor
	}
	r.store.Accounts[id] = a
	return nil
}

func (r *memAccountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balanceMinor int64) error {
	a, ok := r.store.Accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.BalanceMinor = balanceMinor
	r.store.Accounts[id] = a
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	a, ok := r.store.Accounts[id]
	if !ok || a.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.store.Accounts, id)
	// Null the weak references on historical ledger rows, like the real
	// store's SET NULL foreign keys.
	for i, row := range r.store.TxRows {
		if row.SourceAccountID != nil && *row.SourceAccountID == id {
			r.store.TxRows[i].SourceAccountID = nil
		}
		if row.DestinationAccountID != nil && *row.DestinationAccountID == id {
			r.store.TxRows[i].DestinationAccountID = nil
		}
	}
	return nil
}

type memNamespaceRepo struct {
	store *MemStore
}

func (r *memNamespaceRepo) Create(_ context.Context, create dto.NamespaceCreate) error {
	for _, ns := range r.store.Namespaces {
		if ns.UserID == create.UserID && ns.Name == create.Name {
			return domain.ErrConflict
		}
	}
	r.store.Namespaces[create.ID] = dto.NamespaceRead{
		ID: create.ID, UserID: create.UserID, Name: create.Name,
	}
	return nil
}

func (r *memNamespaceRepo) Get(_ context.Context, userID, id uuid.UUID) (*dto.NamespaceRead, error) {
	ns, ok := r.store.Namespaces[id]
	if !ok || ns.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &ns, nil
}

func (r *memNamespaceRepo) GetByName(_ context.Context, userID uuid.UUID, name string) (*dto.NamespaceRead, error) {
	for _, ns := range r.store.Namespaces {
		if ns.UserID == userID && ns.Name == name {
			out := ns
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memNamespaceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.NamespaceRead, error) {
	var out []*dto.NamespaceRead
	for _, ns := range r.store.Namespaces {
		if ns.UserID == userID {
			row := ns
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memNamespaceRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ns, ok := r.store.Namespaces[id]
	if !ok || ns.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.store.Namespaces, id)
	acctRepo := &memAccountRepo{store: r.store}
	for acctID, a := range r.store.Accounts {
		if a.NamespaceID == id {
			if err := acctRepo.Delete(ctx, a.UserID, acctID); err != nil {
				return err
			}
		}
	}
	return nil
}

type memRateRepo struct {
	store *MemStore
}

func (r *memRateRepo) Create(_ context.Context, create dto.RateCreate) error {
	key := rateKey(create.UserID, create.From, create.To)
	if _, exists := r.store.Rates[key]; exists {
		return domain.ErrConflict
	}
	r.store.Rates[key] = dto.RateRead{
		ID: create.ID, UserID: create.UserID,
		From: create.From, To: create.To, Rate: create.Rate,
	}
	return nil
}

func (r *memRateRepo) Get(_ context.Context, userID uuid.UUID, from, to string) (*dto.RateRead, error) {
	rr, ok := r.store.Rates[rateKey(userID, from, to)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rr, nil
}

func (r *memRateRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.RateRead, error) {
	var out []*dto.RateRead
	for _, rr := range r.store.Rates {
		if rr.UserID == userID {
			row := rr
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out, nil
}

func (r *memRateRepo) Update(_ context.Context, userID uuid.UUID, from, to string, update dto.RateUpdate) error {
	key := rateKey(userID, from, to)
	rr, ok := r.store.Rates[key]
	if !ok {
		return domain.ErrNotFound
	}
	rr.Rate = update.Rate
	r.store.Rates[key] = rr
	return nil
}

func (r *memRateRepo) Delete(_ context.Context, userID uuid.UUID, from, to string) error {
	key := rateKey(userID, from, to)
	if _, ok := r.store.Rates[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.Rates, key)
	return nil
}

type memTxRepo struct {
	store *MemStore
}

func (r *memTxRepo) Create(_ context.Context, create dto.TransactionCreate) error {
	if r.store.FailTxCreate {
		return errors.New("ledger unavailable")
	}
	r.store.TxRows = append(r.store.TxRows, dto.TransactionRead{
		ID:                     create.ID,
		UserID:                 create.UserID,
		Type:                   create.Type,
		AmountMinor:            create.AmountMinor,
		Currency:               create.Currency,
		DestinationAmountMinor: create.DestinationAmountMinor,
		DestinationCurrency:    create.DestinationCurrency,
		SourceRate:             create.SourceRate,
		DestinationRate:        create.DestinationRate,
		SourceAccountID:        create.SourceAccountID,
		DestinationAccountID:   create.DestinationAccountID,
		Description:            create.Description,
	})
	r.store.txSeq = append(r.store.txSeq, r.store.nextSeq)
	r.store.nextSeq++
	return nil
}

func (r *memTxRepo) Get(_ context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error) {
	for _, row := range r.store.TxRows {
		if row.ID == id && row.UserID == userID {
			out := row
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTxRepo) List(_ context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*dto.TransactionRead, error) {
	type seqRow struct {
		seq int
		row dto.TransactionRead
	}
	var matched []seqRow
	for i, row := range r.store.TxRows {
		if row.UserID != userID {
			continue
		}
		if filter.Type != nil && row.Type != *filter.Type {
			continue
		}
		if filter.AccountID != nil {
			id := *filter.AccountID
			src := row.SourceAccountID != nil && *row.SourceAccountID == id
			dst := row.DestinationAccountID != nil && *row.DestinationAccountID == id
			if !src && !dst {
				continue
			}
		}
		matched = append(matched, seqRow{seq: r.store.txSeq[i], row: row})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })
	out := make([]*dto.TransactionRead, len(matched))
	for i := range matched {
		row := matched[i].row
		out[i] = &row
	}
	return out, nil
}

type memUserRepo struct {
	store *MemStore
}

func (r *memUserRepo) Create(_ context.Context, create dto.UserCreate) error {
	for _, u := range r.store.Users {
		if u.Username == create.Username || u.Email == create.Email {
			return domain.ErrConflict
		}
	}
	r.store.Users[create.ID] = dto.UserRead{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Role:     create.Role,
	}
	return nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, ok := r.store.Users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByIdentity(_ context.Context, identity string) (*dto.UserRead, error) {
	for _, u := range r.store.Users {
		if u.Username == identity || u.Email == identity {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memProjectRepo struct {
	store *MemStore
}

func (r *memProjectRepo) CreateProject(_ context.Context, create dto.ProjectCreate) error {
	r.store.Projects[create.ID] = dto.ProjectRead{
		ID: create.ID, OwnerID: create.OwnerID, Name: create.Name,
	}
	return nil
}

func (r *memProjectRepo) GetProject(_ context.Context, ownerID, id uuid.UUID) (*dto.ProjectRead, error) {
	p, ok := r.store.Projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memProjectRepo) ListProjects(_ context.Context, ownerID *uuid.UUID) ([]*dto.ProjectRead, error) {
	var out []*dto.ProjectRead
	for _, p := range r.store.Projects {
		if ownerID == nil || p.OwnerID == *ownerID {
			row := p
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProjectRepo) UpsertBudget(_ context.Context, create dto.BudgetCreate) error {
	r.store.Budgets[create.ProjectID] = create
	return nil
}

func (r *memProjectRepo) CreateExpense(_ context.Context, create dto.ExpenseCreate) error {
	r.store.Expenses = append(r.store.Expenses, create)
	return nil
}

func (r *memProjectRepo) CreateSalaryPayment(_ context.Context, create dto.SalaryPaymentCreate) error {
	r.store.Salaries = append(r.store.Salaries, create)
	return nil
}

func (r *memProjectRepo) Summary(_ context.Context, projectID uuid.UUID) (*dto.ProjectSummary, error) {
	summary := &dto.ProjectSummary{ProjectID: projectID}
	if b, ok := r.store.Budgets[projectID]; ok {
		summary.BudgetMinor = b.TotalMinor
	}
	for _, e := range r.store.Expenses {
		if e.ProjectID == projectID {
			summary.ExpensesMinor += e.AmountMinor
		}
	}
	for _, sp := range r.store.Salaries {
		if sp.ProjectID != nil && *sp.ProjectID == projectID {
			summary.SalariesMinor += sp.AmountMinor
		}
	}
	summary.RemainingMinor = summary.BudgetMinor - summary.ExpensesMinor - summary.SalariesMinor
	return summary, nil
}

func (r *memProjectRepo) ListSalariesByEmployee(_ context.Context, employeeID uuid.UUID) ([]*dto.SalaryPaymentCreate, error) {
	var out []*dto.SalaryPaymentCreate
	for _, sp := range r.store.Salaries {
		if sp.EmployeeID == employeeID {
			row := sp
			out = append(out, &row)
		}
	}
	return out, nil
}
