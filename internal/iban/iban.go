// Package iban derives and validates International Bank Account Numbers.
// The banking protocol reports some counterparties with routing data only
// (bank code plus account number); deriving the German IBAN from those keeps
// account deduplication working on a single identifier.
package iban

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrInvalidLength     = errors.New("iban has invalid length")
	ErrInvalidCharacters = errors.New("iban contains invalid characters")
	ErrChecksumMismatch  = errors.New("iban checksum mismatch")
	ErrInvalidBankCode   = errors.New("bank code must be 8 digits")
	ErrInvalidNumber     = errors.New("account number must be 1 to 10 digits")
)

// FromGermanAccount derives the IBAN for a German bank code (BLZ) and
// account number. The account number is left-padded to ten digits.
func FromGermanAccount(bankCode, number string) (string, error) {
	if len(bankCode) != 8 || !isDigits(bankCode) {
		return "", ErrInvalidBankCode
	}
	if len(number) == 0 || len(number) > 10 || !isDigits(number) {
		return "", ErrInvalidNumber
	}

	bban := bankCode + fmt.Sprintf("%010s", number)

	// Check digits: 98 minus the mod-97 remainder of BBAN + "DE00" with
	// letters expanded to digits (D=13, E=14).
	remainder := mod97(bban + "131400")
	check := 98 - remainder

	return fmt.Sprintf("DE%02d%s", check, bban), nil
}

// Validate checks the IBAN's structure and mod-97 checksum.
func Validate(iban string) error {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))

	if len(iban) < 15 || len(iban) > 34 {
		return ErrInvalidLength
	}

	rearranged := iban[4:] + iban[:4]

	var expanded strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			expanded.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			fmt.Fprintf(&expanded, "%d", r-'A'+10)
		default:
			return ErrInvalidCharacters
		}
	}

	if mod97(expanded.String()) != 1 {
		return ErrChecksumMismatch
	}

	return nil
}

func mod97(digits string) int {
	n := new(big.Int)
	if _, ok := n.SetString(digits, 10); !ok {
		return -1
	}

	return int(new(big.Int).Mod(n, big.NewInt(97)).Int64())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
