package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc       func(ctx context.Context, account *domain.Account) error
	CreateTxFunc     func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Account, error)
	GetByIBANFunc    func(ctx context.Context, iban string) (*domain.Account, error)
	GetByIBANTxFunc  func(ctx context.Context, tx usecase.Transaction, iban string) (*domain.Account, error)
	ExistsByIBANFunc func(ctx context.Context, iban string) (bool, error)
	ListByTypeFunc   func(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (m *MockAccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	if m.GetByIBANFunc != nil {
		return m.GetByIBANFunc(ctx, iban)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if account.IBAN == iban {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIBANTx(ctx context.Context, tx usecase.Transaction, iban string) (*domain.Account, error) {
	if m.GetByIBANTxFunc != nil {
		return m.GetByIBANTxFunc(ctx, tx, iban)
	}
	return m.GetByIBAN(ctx, iban)
}

func (m *MockAccountRepository) ExistsByIBAN(ctx context.Context, iban string) (bool, error) {
	if m.ExistsByIBANFunc != nil {
		return m.ExistsByIBANFunc(ctx, iban)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if account.IBAN == iban {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, accountType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Account, 0)
	for _, account := range m.accounts {
		if account.Type == accountType {
			result = append(result, account)
		}
	}
	return result, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		result = append(result, account)
	}
	return result, nil
}

// Count returns the number of stored accounts.
func (m *MockAccountRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	CreateTxFunc             func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	CreateBatchFunc          func(ctx context.Context, tx usecase.Transaction, transactions []*domain.Transaction) error
	ListByAccountFunc        func(ctx context.Context, accountID string) ([]domain.Transaction, error)
	ListByAccountBetweenFunc func(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, transactions []*domain.Transaction) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, transactions)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transactions...)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Transaction, 0)
	for _, tx := range m.transactions {
		if tx.SourceID == accountID || tx.TargetID == accountID {
			result = append(result, *tx)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	if m.ListByAccountBetweenFunc != nil {
		return m.ListByAccountBetweenFunc(ctx, accountID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Transaction, 0)
	for _, tx := range m.transactions {
		involved := tx.SourceID == accountID || tx.TargetID == accountID
		inWindow := !tx.Time.Before(from) && tx.Time.Before(to)
		if involved && inWindow {
			result = append(result, *tx)
		}
	}
	return result, nil
}

// Count returns the number of stored transactions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// exactly once.
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

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
