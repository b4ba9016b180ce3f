package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a directed money movement between two accounts at a
// point in time. Amount is stored as an absolute value; direction is encoded
// purely by which end is source vs. target.
type Transaction struct {
	ID        string
	SourceID  string
	TargetID  string
	Amount    decimal.Decimal
	Time      time.Time
	Message   string
	CreatedAt time.Time
}

// Validate checks the transaction's structural invariants.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.SourceID == "" || t.TargetID == "" {
		return ErrMissingEndpoint
	}

	return nil
}

// IsTransfer reports whether the transaction moves money between two of the
// user's own accounts.
func (t *Transaction) IsTransfer(source, target *Account) bool {
	return source.IsOwned() && target.IsOwned()
}

// SignedEffect returns the transaction's effect on the given account:
// +Amount when the account is the target, -Amount when it is the source,
// zero when the account is not involved.
func (t *Transaction) SignedEffect(accountID string) decimal.Decimal {
	switch accountID {
	case t.TargetID:
		return t.Amount
	case t.SourceID:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
