package fints

import (
	"fmt"
	"strings"

	"github.com/mitch000001/go-hbci/bankinfo"
)

// ResolveURL looks up the FinTS endpoint for a bank code in the bundled
// institute registry.
func ResolveURL(bankCode string) (string, error) {
	info := bankinfo.FindByBankID(bankCode)
	url := strings.TrimSpace(info.URL)
	if url == "" {
		return "", fmt.Errorf("no FinTS endpoint registered for bank code %s", bankCode)
	}

	return url, nil
}

// BankName returns the institute's display name, or a generic label built
// from the bank code when the registry has no entry.
func BankName(bankCode string) string {
	info := bankinfo.FindByBankID(bankCode)
	name := strings.TrimSpace(info.Institute)
	if name == "" {
		return "Bank " + bankCode
	}

	return name
}
