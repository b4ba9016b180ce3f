package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		tx          Transaction
		expectedErr error
	}{
		{
			name: "valid transaction",
			tx: Transaction{
				SourceID: "acc-1",
				TargetID: "acc-2",
				Amount:   decimal.NewFromFloat(3.0),
			},
			expectedErr: nil,
		},
		{
			name: "zero amount is allowed",
			tx: Transaction{
				SourceID: "acc-1",
				TargetID: "acc-2",
				Amount:   decimal.Zero,
			},
			expectedErr: nil,
		},
		{
			name: "negative amount",
			tx: Transaction{
				SourceID: "acc-1",
				TargetID: "acc-2",
				Amount:   decimal.NewFromFloat(-3.0),
			},
			expectedErr: ErrNegativeAmount,
		},
		{
			name: "missing source",
			tx: Transaction{
				TargetID: "acc-2",
				Amount:   decimal.NewFromFloat(3.0),
			},
			expectedErr: ErrMissingEndpoint,
		},
		{
			name: "missing target",
			tx: Transaction{
				SourceID: "acc-1",
				Amount:   decimal.NewFromFloat(3.0),
			},
			expectedErr: ErrMissingEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if err != tt.expectedErr {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestTransaction_IsTransfer(t *testing.T) {
	tests := []struct {
		name       string
		sourceType AccountType
		targetType AccountType
		expected   bool
	}{
		{name: "both owned", sourceType: AccountTypeOwned, targetType: AccountTypeOwned, expected: true},
		{name: "foreign target", sourceType: AccountTypeOwned, targetType: AccountTypeForeign, expected: false},
		{name: "foreign source", sourceType: AccountTypeForeign, targetType: AccountTypeOwned, expected: false},
		{name: "both foreign", sourceType: AccountTypeForeign, targetType: AccountTypeForeign, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &Account{ID: "acc-1", Type: tt.sourceType}
			target := &Account{ID: "acc-2", Type: tt.targetType}
			tx := Transaction{SourceID: source.ID, TargetID: target.ID, Amount: decimal.NewFromFloat(1.0)}

			if got := tx.IsTransfer(source, target); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransaction_SignedEffect(t *testing.T) {
	tx := Transaction{
		SourceID: "acc-1",
		TargetID: "acc-2",
		Amount:   decimal.NewFromFloat(20.0),
	}

	if got := tx.SignedEffect("acc-2"); !got.Equal(decimal.NewFromFloat(20.0)) {
		t.Errorf("expected +20 for target, got %s", got)
	}
	if got := tx.SignedEffect("acc-1"); !got.Equal(decimal.NewFromFloat(-20.0)) {
		t.Errorf("expected -20 for source, got %s", got)
	}
	if got := tx.SignedEffect("acc-3"); !got.IsZero() {
		t.Errorf("expected zero for uninvolved account, got %s", got)
	}
}
