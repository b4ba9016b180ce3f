package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account as one of the user's own SEPA accounts
// or as a counterparty observed on a transaction.
type AccountType string

const (
	AccountTypeOwned   AccountType = "OWNED"
	AccountTypeForeign AccountType = "FOREIGN"
)

// Account represents a bank account, either owned or foreign.
//
// Balance is the account's value as of the latest known point in time, not a
// historical starting balance: every recorded transaction is interpreted as
// already applied. Foreign accounts carry no balance.
type Account struct {
	ID        string
	IBAN      string
	BIC       string
	BankCode  string
	Number    string
	Name      string
	Type      AccountType
	Balance   decimal.NullDecimal
	CreatedAt time.Time
}

// NewBalance wraps a known balance value.
func NewBalance(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// IsOwned reports whether the account is one of the user's own accounts.
func (a *Account) IsOwned() bool {
	return a.Type == AccountTypeOwned
}

// HistoryBounds returns the earliest and latest transaction time touching the
// account. ok is false when no transactions exist.
func (a *Account) HistoryBounds(txs []Transaction) (start, end time.Time, ok bool) {
	if len(txs) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start, end = txs[0].Time, txs[0].Time
	for _, tx := range txs[1:] {
		if tx.Time.Before(start) {
			start = tx.Time
		}
		if tx.Time.After(end) {
			end = tx.Time
		}
	}

	return start, end, true
}

// Deposits returns the transactions where the account is the target.
func (a *Account) Deposits(txs []Transaction) []Transaction {
	deposits := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.TargetID == a.ID {
			deposits = append(deposits, tx)
		}
	}

	return deposits
}

// Withdrawals returns the transactions where the account is the source.
func (a *Account) Withdrawals(txs []Transaction) []Transaction {
	withdrawals := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.SourceID == a.ID {
			withdrawals = append(withdrawals, tx)
		}
	}

	return withdrawals
}

// TransactionsSum returns the net effect of the given transactions on the
// account: deposit amounts minus withdrawal amounts.
func (a *Account) TransactionsSum(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.SignedEffect(a.ID))
	}

	return sum
}

// StartBalance returns the balance implied before any recorded transaction:
// Balance minus TransactionsSum. Absent when Balance is absent.
func (a *Account) StartBalance(txs []Transaction) decimal.NullDecimal {
	if !a.Balance.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{
		Decimal: a.Balance.Decimal.Sub(a.TransactionsSum(txs)),
		Valid:   true,
	}
}
