package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconstructBalances produces a day-indexed balance series for an account by
// walking backward from its current balance. Index 0 is today; index d holds
// the balance as of d days before today.
//
// Each step reverses the net effect of the transactions falling in the
// half-open day window [today-d, today-(d-1)): a deposit is subtracted on the
// way back, a withdrawal added. A window without transactions carries the
// previous value forward unchanged.
func ReconstructBalances(account *Account, txs []Transaction, days int, today time.Time) ([]decimal.Decimal, error) {
	if days <= 0 {
		return nil, ErrEmptySeries
	}

	current := decimal.Zero
	if account.Balance.Valid {
		current = account.Balance.Decimal
	}

	series := make([]decimal.Decimal, days)
	series[0] = current

	for d := 1; d < days; d++ {
		windowStart := today.AddDate(0, 0, -d)
		windowEnd := today.AddDate(0, 0, -(d - 1))

		effect := decimal.Zero
		for _, tx := range txs {
			if !tx.Time.Before(windowStart) && tx.Time.Before(windowEnd) {
				effect = effect.Add(tx.SignedEffect(account.ID))
			}
		}

		series[d] = series[d-1].Sub(effect)
	}

	return series, nil
}
