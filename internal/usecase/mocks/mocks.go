package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// MockTransaction stages writes until Commit applies them. Rollback drops
// everything staged, so tests can observe that nothing survives a failed
// execute call.
type MockTransaction struct {
	mu         sync.Mutex
	staged     []func()
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

// Stage queues a write to apply on Commit.
func (t *MockTransaction) Stage(apply func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged = append(t.staged, apply)
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, apply := range t.staged {
		apply()
	}
	t.staged = nil
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Committed {
		return nil
	}
	t.staged = nil
	t.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.Transactions = append(m.Transactions, tx)
	m.mu.Unlock()
	return tx, nil
}

// MockAccountDirectory is a mock implementation of AccountDirectory.
type MockAccountDirectory struct {
	mu        sync.RWMutex
	profiles  map[string]*domain.AccountProfile
	positions map[string]*domain.CashPosition

	ProfileByUsernameFunc    func(ctx context.Context, username string) (*domain.AccountProfile, error)
	ProfileByCredentialsFunc func(ctx context.Context, username, password string) (*domain.AccountProfile, error)
	PositionsByUsernameFunc  func(ctx context.Context, username string) ([]*domain.CashPosition, error)
	PositionByNumberFunc     func(ctx context.Context, tx usecase.Transaction, number string) (*domain.CashPosition, error)
}

func NewMockAccountDirectory() *MockAccountDirectory {
	return &MockAccountDirectory{
		profiles:  make(map[string]*domain.AccountProfile),
		positions: make(map[string]*domain.CashPosition),
	}
}

// AddProfile seeds a profile.
func (m *MockAccountDirectory) AddProfile(p *domain.AccountProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Username] = p
}

// AddPosition seeds a cash position.
func (m *MockAccountDirectory) AddPosition(p *domain.CashPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[p.Number] = p
}

func (m *MockAccountDirectory) ProfileByUsername(ctx context.Context, username string) (*domain.AccountProfile, error) {
	if m.ProfileByUsernameFunc != nil {
		return m.ProfileByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[username]; ok {
		return p, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountDirectory) ProfileByCredentials(ctx context.Context, username, password string) (*domain.AccountProfile, error) {
	if m.ProfileByCredentialsFunc != nil {
		return m.ProfileByCredentialsFunc(ctx, username, password)
	}
	return m.ProfileByUsername(ctx, username)
}

func (m *MockAccountDirectory) PositionsByUsername(ctx context.Context, username string) ([]*domain.CashPosition, error) {
	if m.PositionsByUsernameFunc != nil {
		return m.PositionsByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var positions []*domain.CashPosition
	for _, p := range m.positions {
		if p.Username == username {
			positions = append(positions, p)
		}
	}
	return positions, nil
}

func (m *MockAccountDirectory) PositionByNumber(ctx context.Context, tx usecase.Transaction, number string) (*domain.CashPosition, error) {
	if m.PositionByNumberFunc != nil {
		return m.PositionByNumberFunc(ctx, tx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.positions[number]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.Mutex
	nextID  int64
	Records []*domain.LedgerRecord

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error
	ListByUsernameFunc func(ctx context.Context, username string, limit, offset int) ([]*domain.LedgerRecord, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	m.nextID++
	record.ID = m.nextID
	m.mu.Unlock()
	tx.(*MockTransaction).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Records = append(m.Records, record)
	})
	return nil
}

func (m *MockLedgerRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]*domain.LedgerRecord, error) {
	if m.ListByUsernameFunc != nil {
		return m.ListByUsernameFunc(ctx, username, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []*domain.LedgerRecord
	for _, r := range m.Records {
		if r.Username == username {
			records = append(records, r)
		}
	}
	return records, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository.
type MockActivityRepository struct {
	mu      sync.Mutex
	nextID  int64
	Entries []*domain.ActivityEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityEntry) error
	ListByAccountFunc func(ctx context.Context, number string, limit, offset int) ([]*domain.ActivityEntry, error)
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	m.nextID++
	entry.ID = m.nextID
	m.mu.Unlock()
	tx.(*MockTransaction).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Entries = append(m.Entries, entry)
	})
	return nil
}

func (m *MockActivityRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.ActivityEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, number, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []*domain.ActivityEntry
	for _, e := range m.Entries {
		if e.AccountNumber == number {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// BalanceWrite records one balance-sink write.
type BalanceWrite struct {
	InternalID int64
	Balance    decimal.Decimal
}

// MockBalanceSink is a mock implementation of BalanceSink.
type MockBalanceSink struct {
	mu       sync.Mutex
	Writes   []BalanceWrite
	Balances map[int64]decimal.Decimal

	WriteBalanceFunc func(ctx context.Context, tx usecase.Transaction, internalID int64, balance decimal.Decimal) error
}

func NewMockBalanceSink() *MockBalanceSink {
	return &MockBalanceSink{Balances: make(map[int64]decimal.Decimal)}
}

func (m *MockBalanceSink) WriteBalance(ctx context.Context, tx usecase.Transaction, internalID int64, balance decimal.Decimal) error {
	if m.WriteBalanceFunc != nil {
		return m.WriteBalanceFunc(ctx, tx, internalID, balance)
	}
	tx.(*MockTransaction).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Writes = append(m.Writes, BalanceWrite{InternalID: internalID, Balance: balance})
		m.Balances[internalID] = balance
	})
	return nil
}

// MockPendingTransferStore is a mock implementation of PendingTransferStore.
type MockPendingTransferStore struct {
	mu        sync.Mutex
	proposals map[string]*domain.TransferProposal
	PutCalls  int

	PutFunc          func(ctx context.Context, sessionID string, proposal *domain.TransferProposal) error
	TakeAndClearFunc func(ctx context.Context, sessionID string) (*domain.TransferProposal, error)
}

func NewMockPendingTransferStore() *MockPendingTransferStore {
	return &MockPendingTransferStore{proposals: make(map[string]*domain.TransferProposal)}
}

func (m *MockPendingTransferStore) Put(ctx context.Context, sessionID string, proposal *domain.TransferProposal) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, sessionID, proposal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	m.proposals[sessionID] = proposal
	return nil
}

func (m *MockPendingTransferStore) TakeAndClear(ctx context.Context, sessionID string) (*domain.TransferProposal, error) {
	if m.TakeAndClearFunc != nil {
		return m.TakeAndClearFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	proposal, ok := m.proposals[sessionID]
	if !ok {
		return nil, domain.ErrNoPendingTransfer
	}
	delete(m.proposals, sessionID)
	return proposal, nil
}

// MockSessionStore is a mock implementation of SessionStore.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string

	BindFunc              func(ctx context.Context, sessionID, username string) error
	UsernameBySessionFunc func(ctx context.Context, sessionID string) (string, error)
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]string)}
}

func (m *MockSessionStore) Bind(ctx context.Context, sessionID, username string) error {
	if m.BindFunc != nil {
		return m.BindFunc(ctx, sessionID, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = username
	return nil
}

func (m *MockSessionStore) UsernameBySession(ctx context.Context, sessionID string) (string, error) {
	if m.UsernameBySessionFunc != nil {
		return m.UsernameBySessionFunc(ctx, sessionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	username, ok := m.sessions[sessionID]
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	return username, nil
}

// MockRetrier runs the operation once unless RetryFunc overrides it.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
