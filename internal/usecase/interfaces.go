package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theCalcaholic/findus/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIBAN(ctx context.Context, iban string) (*domain.Account, error)
	// GetByIBANTx is GetByIBAN within a storage transaction, so rows
	// inserted earlier in the same transaction are visible to the lookup.
	GetByIBANTx(ctx context.Context, tx Transaction, iban string) (*domain.Account, error)
	ExistsByIBAN(ctx context.Context, iban string) (bool, error)
	ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions. An account's
// transactions are all rows where it appears as either source or target.
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	CreateBatch(ctx context.Context, tx Transaction, transactions []*domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	// ListByAccountBetween returns the account's transactions in the
	// half-open window [from, to), ordered by time ascending.
	ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}

// BankAccount describes one of the user's own accounts as reported by the
// banking service.
type BankAccount struct {
	IBAN     string
	BIC      string
	BankCode string
	Number   string
}

// BankTransaction is one externally reported transaction record. Amount is
// signed: negative means money leaving the own account.
type BankTransaction struct {
	CounterpartyIBAN string
	CounterpartyName string
	Amount           decimal.Decimal
	Date             time.Time
	Purpose          string
}

// BankAccountDetail carries per-account metadata from the bank.
type BankAccountDetail struct {
	IBAN    string
	Owner   string
	Product string
}

// BankInformation carries bank and account metadata.
type BankInformation struct {
	BankName string
	Accounts []BankAccountDetail
}

// BankClient is the port over the remote banking protocol client. Network
// and authentication failures propagate unchanged; there is no retry.
type BankClient interface {
	Accounts(ctx context.Context) ([]BankAccount, error)
	Balance(ctx context.Context, account BankAccount) (decimal.Decimal, error)
	Transactions(ctx context.Context, account BankAccount, from, to time.Time) ([]BankTransaction, error)
	Information(ctx context.Context) (*BankInformation, error)
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles storage transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries a storage operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for computed report series.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
