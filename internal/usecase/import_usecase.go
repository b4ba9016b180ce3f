package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/infrastructure/metrics"
)

// DefaultLookbackDays is the import window used when an account has no local
// transaction history.
const DefaultLookbackDays = 7

// ImportUseCase synchronizes local storage with the external account and
// transaction view. It is the only writer in the system.
type ImportUseCase struct {
	bank            BankClient
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
	logger          zerolog.Logger
	lookbackDays    int
	atomicWindows   bool
	now             func() time.Time
}

// NewImportUseCase creates a new ImportUseCase. lookbackDays bounds how far
// back transactions are fetched for accounts without local history.
func NewImportUseCase(
	bank BankClient,
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	logger zerolog.Logger,
	lookbackDays int,
) *ImportUseCase {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	return &ImportUseCase{
		bank:            bank,
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		retrier:         retrier,
		metrics:         m,
		logger:          logger,
		lookbackDays:    lookbackDays,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithNow fixes the use case's clock. Used by tests.
func (uc *ImportUseCase) WithNow(now func() time.Time) *ImportUseCase {
	uc.now = now
	return uc
}

// WithAtomicWindows makes the importer group-commit each account's whole
// window in one storage transaction instead of committing per record.
func (uc *ImportUseCase) WithAtomicWindows(atomic bool) *ImportUseCase {
	uc.atomicWindows = atomic
	return uc
}

// Result summarizes an import run.
type Result struct {
	AccountsCreated      int
	TransactionsImported int
}

// Run executes a full import: own accounts first, then each account's
// transaction window. Bank client failures propagate and abort the run.
func (uc *ImportUseCase) Run(ctx context.Context) (*Result, error) {
	started := uc.now()
	result := &Result{}

	accounts, err := uc.bank.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching own accounts: %w", err)
	}

	info, err := uc.bank.Information(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching bank information: %w", err)
	}

	for _, account := range accounts {
		created, err := uc.ensureOwnAccount(ctx, account, info)
		if err != nil {
			return nil, err
		}
		if created {
			result.AccountsCreated++
		}
	}

	for _, account := range accounts {
		imported, created, err := uc.importTransactions(ctx, account)
		if err != nil {
			return nil, err
		}
		result.TransactionsImported += imported
		result.AccountsCreated += created
	}

	uc.metrics.ImportDuration.Observe(uc.now().Sub(started).Seconds())
	uc.logger.Info().
		Int("accounts_created", result.AccountsCreated).
		Int("transactions_imported", result.TransactionsImported).
		Msg("import finished")

	return result, nil
}

// ensureOwnAccount creates a local OWNED account for the bank account unless
// one with the same IBAN already exists. The balance is fetched live at
// creation time.
func (uc *ImportUseCase) ensureOwnAccount(ctx context.Context, account BankAccount, info *BankInformation) (bool, error) {
	exists, err := uc.accountRepo.ExistsByIBAN(ctx, account.IBAN)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	balance, err := uc.bank.Balance(ctx, account)
	if err != nil {
		return false, fmt.Errorf("fetching balance for %s: %w", account.IBAN, err)
	}

	newAccount := &domain.Account{
		ID:        uc.idGen.Generate(),
		IBAN:      account.IBAN,
		BIC:       account.BIC,
		BankCode:  account.BankCode,
		Number:    account.Number,
		Name:      accountName(account.IBAN, info),
		Type:      domain.AccountTypeOwned,
		Balance:   domain.NewBalance(balance),
		CreatedAt: uc.now(),
	}

	if err := uc.accountRepo.Create(ctx, newAccount); err != nil {
		return false, err
	}

	uc.metrics.AccountsCreated.WithLabelValues(string(domain.AccountTypeOwned)).Inc()
	uc.logger.Info().Str("iban", account.IBAN).Str("name", newAccount.Name).Msg("created own account")

	return true, nil
}

// importTransactions fetches and stores the account's transaction window.
// Returns the number of transactions imported and foreign accounts created.
func (uc *ImportUseCase) importTransactions(ctx context.Context, account BankAccount) (int, int, error) {
	ownAccount, err := uc.accountRepo.GetByIBAN(ctx, account.IBAN)
	if err != nil {
		// The account was confirmed or created moments ago; not finding it
		// now is a data-consistency failure, not a recoverable condition.
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrOwnAccountMissing, account.IBAN)
	}

	from, to, err := uc.importWindow(ctx, ownAccount)
	if err != nil {
		return 0, 0, fmt.Errorf("loading history for %s: %w", account.IBAN, err)
	}

	records, err := uc.bank.Transactions(ctx, account, from, to)
	if err != nil {
		return 0, 0, fmt.Errorf("fetching transactions for %s: %w", account.IBAN, err)
	}

	var imported, created int
	if uc.atomicWindows {
		imported, created, err = uc.storeWindow(ctx, ownAccount, records)
	} else {
		for _, record := range records {
			accountCreated, storeErr := uc.storeTransaction(ctx, ownAccount, record)
			if storeErr != nil {
				err = storeErr
				break
			}
			imported++
			if accountCreated {
				created++
			}
		}
	}
	if err != nil {
		return imported, created, err
	}

	uc.logger.Info().
		Str("iban", account.IBAN).
		Time("from", from).
		Time("to", to).
		Int("transactions", imported).
		Msg("imported account window")

	return imported, created, nil
}

// importWindow computes the fetch window for an account: start at the
// configured lookback, clamped forward by the locally known history end.
// A failing history load aborts the import; falling back to the full
// lookback would re-fetch records the account already holds.
func (uc *ImportUseCase) importWindow(ctx context.Context, account *domain.Account) (time.Time, time.Time, error) {
	today := truncateToDay(uc.now())
	from := today.AddDate(0, 0, -uc.lookbackDays)

	txs, err := uc.transactionRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if _, end, ok := account.HistoryBounds(txs); ok {
		historyEnd := truncateToDay(end)
		if historyEnd.After(from) {
			from = historyEnd
		}
	}

	return from, today, nil
}

// storeTransaction resolves the counterparty (creating a FOREIGN account on
// first sight), resolves direction from the amount sign, and group-commits
// the new rows in one storage transaction. A negative amount designates the
// own account as source.
func (uc *ImportUseCase) storeTransaction(ctx context.Context, ownAccount *domain.Account, record BankTransaction) (bool, error) {
	created := false

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		counterparty, accountCreated, err := uc.resolveCounterparty(ctx, tx, record)
		if err != nil {
			return err
		}

		transaction, err := uc.buildTransaction(ownAccount, counterparty, record)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.CreateTx(ctx, tx, transaction); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		created = accountCreated

		return nil
	})
	if err != nil {
		return false, err
	}

	uc.metrics.TransactionsImported.Inc()

	return created, nil
}

// storeWindow group-commits a whole account window: counterparty accounts
// and transaction rows land in a single storage transaction.
func (uc *ImportUseCase) storeWindow(ctx context.Context, ownAccount *domain.Account, records []BankTransaction) (int, int, error) {
	imported, created := 0, 0

	err := uc.retrier.Retry(ctx, func() error {
		imported, created = 0, 0

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		transactions := make([]*domain.Transaction, 0, len(records))
		for _, record := range records {
			counterparty, accountCreated, err := uc.resolveCounterparty(ctx, tx, record)
			if err != nil {
				return err
			}
			if accountCreated {
				created++
			}

			transaction, err := uc.buildTransaction(ownAccount, counterparty, record)
			if err != nil {
				return err
			}
			transactions = append(transactions, transaction)
		}

		if err := uc.transactionRepo.CreateBatch(ctx, tx, transactions); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		imported = len(transactions)

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	uc.metrics.TransactionsImported.Add(float64(imported))

	return imported, created, nil
}

func (uc *ImportUseCase) buildTransaction(ownAccount, counterparty *domain.Account, record BankTransaction) (*domain.Transaction, error) {
	source, target := counterparty, ownAccount
	if record.Amount.IsNegative() {
		source, target = ownAccount, counterparty
	}

	transaction := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		SourceID:  source.ID,
		TargetID:  target.ID,
		Amount:    record.Amount.Abs(),
		Time:      truncateToDay(record.Date),
		Message:   record.Purpose,
		CreatedAt: uc.now(),
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	return transaction, nil
}

// resolveCounterparty finds or creates the account on the other end of the
// record. Foreign accounts carry only name and IBAN; balance and routing
// fields stay absent. The lookup runs inside the storage transaction so a
// counterparty inserted earlier in the same window is found instead of
// tripping the unique IBAN index. Records without a derivable IBAN all
// resolve to one shared identifier-less account.
func (uc *ImportUseCase) resolveCounterparty(ctx context.Context, tx Transaction, record BankTransaction) (*domain.Account, bool, error) {
	existing, err := uc.accountRepo.GetByIBANTx(ctx, tx, record.CounterpartyIBAN)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, false, err
	}

	counterparty := &domain.Account{
		ID:        uc.idGen.Generate(),
		IBAN:      record.CounterpartyIBAN,
		Name:      record.CounterpartyName,
		Type:      domain.AccountTypeForeign,
		CreatedAt: uc.now(),
	}

	if err := uc.accountRepo.CreateTx(ctx, tx, counterparty); err != nil {
		return nil, false, err
	}

	uc.metrics.AccountsCreated.WithLabelValues(string(domain.AccountTypeForeign)).Inc()
	uc.logger.Debug().Str("iban", counterparty.IBAN).Str("name", counterparty.Name).Msg("created foreign account")

	return counterparty, true, nil
}

// accountName builds a display name from bank metadata: bank name plus owner
// and product, falling back to a generic label when the account is unknown
// to the metadata set.
func accountName(iban string, info *BankInformation) string {
	if info == nil {
		return "Account"
	}

	for _, detail := range info.Accounts {
		if detail.IBAN == iban {
			return fmt.Sprintf("%s - %s (%s)", info.BankName, detail.Owner, detail.Product)
		}
	}

	return info.BankName + " - Account"
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
