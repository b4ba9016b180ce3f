package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/usecase"
)

const accountColumns = `id, iban, bic, bank_code, number, name, type, balance, created_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const insertAccountSQL = `
	INSERT INTO account (id, iban, bic, bank_code, number, name, type, balance, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, insertAccountSQL, accountArgs(account)...)

	return mapAccountError(err)
}

// CreateTx creates a new account within a storage transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertAccountSQL, accountArgs(account)...)

	return mapAccountError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIBAN retrieves an account by its IBAN. An empty IBAN selects the
// shared identifier-less counterparty account, if one exists.
func (r *AccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	return getByIBAN(ctx, r.pool, iban)
}

// GetByIBANTx is GetByIBAN within a storage transaction; rows inserted
// earlier in the same transaction are visible to the lookup.
func (r *AccountRepository) GetByIBANTx(ctx context.Context, tx usecase.Transaction, iban string) (*domain.Account, error) {
	return getByIBAN(ctx, tx.(*Tx).PgxTx(), iban)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getByIBAN(ctx context.Context, q rowQuerier, iban string) (*domain.Account, error) {
	if iban == "" {
		// Accounts without an IBAN are stored with a NULL column, which a
		// plain equality match would never find. Counterparties lacking a
		// derivable identifier all collapse into the earliest such row.
		row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE iban IS NULL ORDER BY id LIMIT 1`)

		return scanAccount(row)
	}

	row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE iban = $1`, iban)

	return scanAccount(row)
}

// ExistsByIBAN reports whether an account with the given IBAN exists.
func (r *AccountRepository) ExistsByIBAN(ctx context.Context, iban string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM account WHERE iban = $1)`, iban).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ListByType retrieves all accounts with the given classification, ordered
// by name.
func (r *AccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM account WHERE type = $1 ORDER BY name`, string(accountType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM account ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func accountArgs(account *domain.Account) []any {
	return []any{
		account.ID,
		textOrNull(account.IBAN),
		textOrNull(account.BIC),
		textOrNull(account.BankCode),
		textOrNull(account.Number),
		account.Name,
		string(account.Type),
		nullDecimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account                 domain.Account
		iban, bic, code, number pgtype.Text
		accountType             string
		balance                 pgtype.Numeric
		createdAt               pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &iban, &bic, &code, &number, &account.Name, &accountType, &balance, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.IBAN = iban.String
	account.BIC = bic.String
	account.BankCode = code.String
	account.Number = number.String
	account.Type = domain.AccountType(accountType)
	account.Balance = numericToNullDecimal(balance)
	account.CreatedAt = createdAt.Time

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func mapAccountError(err error) error {
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateIBAN
	}

	return err
}

// Type conversion helpers.
func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(d.Decimal)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToNullDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: numericToDecimal(n), Valid: true}
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
