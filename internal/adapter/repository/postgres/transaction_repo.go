package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/usecase"
)

const transactionColumns = `id, source_id, target_id, amount, time, message, created_at`

const insertTransactionSQL = `
	INSERT INTO transaction (id, source_id, target_id, amount, time, message, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// CreateTx creates a new transaction row within a storage transaction.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertTransactionSQL, transactionArgs(transaction)...)

	return err
}

// CreateBatch group-commits a batch of rows in one round trip.
func (r *TransactionRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, transactions []*domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, transaction := range transactions {
		batch.Queue(insertTransactionSQL, transactionArgs(transaction)...)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range transactions {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListByAccount retrieves all transactions touching the account, either
// direction, ordered by time ascending.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transaction
		 WHERE source_id = $1 OR target_id = $1
		 ORDER BY time, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByAccountBetween retrieves the account's transactions in the half-open
// window [from, to), ordered by time ascending.
func (r *TransactionRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transaction
		 WHERE (source_id = $1 OR target_id = $1) AND time >= $2 AND time < $3
		 ORDER BY time, id`, accountID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func transactionArgs(transaction *domain.Transaction) []any {
	return []any{
		transaction.ID,
		transaction.SourceID,
		transaction.TargetID,
		decimalToNumeric(transaction.Amount),
		timeToPgTimestamptz(transaction.Time),
		textOrNull(transaction.Message),
		timeToPgTimestamptz(transaction.CreatedAt),
	}
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)

	for rows.Next() {
		var (
			transaction     domain.Transaction
			amount          pgtype.Numeric
			txTime, created pgtype.Timestamptz
			message         pgtype.Text
		)

		err := rows.Scan(&transaction.ID, &transaction.SourceID, &transaction.TargetID,
			&amount, &txTime, &message, &created)
		if err != nil {
			return nil, err
		}

		transaction.Amount = numericToDecimal(amount)
		transaction.Time = txTime.Time
		transaction.Message = message.String
		transaction.CreatedAt = created.Time

		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}
