package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues sortable surrogate IDs for accounts and transactions.
// Ordering by ID roughly follows insertion order, which keeps transactions
// booked on the same day in import order.
type ULIDGenerator struct{}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
