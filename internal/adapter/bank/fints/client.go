// Package fints adapts the FinTS/HBCI protocol client to the bank port. The
// protocol flow itself (dialog handshake, PIN/TAN authentication, SWIFT
// statement parsing) is handled entirely by go-hbci; this package only maps
// its account and transaction records into the importer's view.
package fints

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitch000001/go-hbci/client"
	hbci "github.com/mitch000001/go-hbci/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theCalcaholic/findus/internal/iban"
	"github.com/theCalcaholic/findus/internal/usecase"
)

// TanProvider answers a pending TAN challenge. It blocks until the operator
// has responded; for decoupled TAN schemes (app confirmation) the returned
// value may be empty.
type TanProvider func(challenge string) (string, error)

// Config holds the connection parameters for one banking session.
type Config struct {
	BankCode  string
	UserID    string
	PIN       string
	URL       string // resolved via the bank registry when empty
	ProductID string
	Tan       TanProvider
}

// Client implements usecase.BankClient over a FinTS/HBCI session.
type Client struct {
	hbci   *client.Client
	config Config
	logger zerolog.Logger
}

// New opens a banking session. The bank's endpoint is resolved from its bank
// code unless the config pins a URL.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	url := cfg.URL
	if url == "" {
		resolved, err := ResolveURL(cfg.BankCode)
		if err != nil {
			return nil, err
		}
		url = resolved
		logger.Debug().Str("bank_code", cfg.BankCode).Str("url", url).Msg("resolved bank endpoint")
	}

	if cfg.ProductID != "" {
		logger.Debug().Str("product_id", cfg.ProductID).Msg("using registered FinTS product")
	}

	hbciClient, err := client.New(client.Config{
		BankID:    cfg.BankCode,
		AccountID: cfg.UserID,
		PIN:       cfg.PIN,
		URL:       url,
	})
	if err != nil {
		return nil, fmt.Errorf("opening FinTS session: %w", err)
	}

	return &Client{hbci: hbciClient, config: cfg, logger: logger}, nil
}

// Accounts returns the user's own SEPA accounts. Accounts reported without
// an IBAN get one derived from bank code and account number.
func (c *Client) Accounts(ctx context.Context) ([]usecase.BankAccount, error) {
	var infos []hbci.AccountInformation

	err := c.withTanRetry(ctx, func() error {
		var opErr error
		infos, opErr = c.hbci.Accounts()
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	accounts := make([]usecase.BankAccount, 0, len(infos))
	for _, info := range infos {
		accounts = append(accounts, usecase.BankAccount{
			IBAN:     c.accountIBAN(info.AccountConnection),
			BankCode: info.AccountConnection.BankID,
			Number:   info.AccountConnection.AccountID,
		})
	}

	return accounts, nil
}

// Balance fetches the account's current booked balance.
func (c *Client) Balance(ctx context.Context, account usecase.BankAccount) (decimal.Decimal, error) {
	connection := hbci.AccountConnection{
		AccountID: account.Number,
		BankID:    account.BankCode,
	}

	var balances []hbci.AccountBalance

	err := c.withTanRetry(ctx, func() error {
		var opErr error
		balances, opErr = c.hbci.AccountBalances(connection, false)
		return opErr
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching balance for %s: %w", account.IBAN, err)
	}

	if len(balances) == 0 {
		return decimal.Zero, fmt.Errorf("bank reported no balance for %s", account.IBAN)
	}

	return decimal.NewFromFloat(balances[0].BookedBalance.Amount.Amount), nil
}

// Transactions fetches the account's transaction records in [from, to].
func (c *Client) Transactions(ctx context.Context, account usecase.BankAccount, from, to time.Time) ([]usecase.BankTransaction, error) {
	connection := hbci.AccountConnection{
		AccountID: account.Number,
		BankID:    account.BankCode,
	}
	timeframe := hbci.Timeframe{
		StartDate: hbci.NewShortDate(from),
		EndDate:   hbci.NewShortDate(to),
	}

	var records []hbci.AccountTransaction

	err := c.withTanRetry(ctx, func() error {
		var opErr error
		records, opErr = c.hbci.AccountTransactions(connection, timeframe, false, "")
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for %s: %w", account.IBAN, err)
	}

	transactions := make([]usecase.BankTransaction, 0, len(records))
	for _, record := range records {
		transactions = append(transactions, usecase.BankTransaction{
			CounterpartyIBAN: c.counterpartyIBAN(record),
			CounterpartyName: record.Name,
			Amount:           decimal.NewFromFloat(record.Amount.Amount),
			Date:             record.BookingDate,
			Purpose:          record.Purpose,
		})
	}

	return transactions, nil
}

// Information returns bank and account metadata for display-name building.
func (c *Client) Information(ctx context.Context) (*usecase.BankInformation, error) {
	var infos []hbci.AccountInformation

	err := c.withTanRetry(ctx, func() error {
		var opErr error
		infos, opErr = c.hbci.Accounts()
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching bank information: %w", err)
	}

	information := &usecase.BankInformation{
		BankName: BankName(c.config.BankCode),
	}
	for _, info := range infos {
		information.Accounts = append(information.Accounts, usecase.BankAccountDetail{
			IBAN:    c.accountIBAN(info.AccountConnection),
			Owner:   strings.TrimSpace(info.Name1 + " " + info.Name2),
			Product: info.ProductID,
		})
	}

	return information, nil
}

// withTanRetry runs a bank operation and, when the dialog reports a pending
// TAN challenge, blocks on the configured provider before retrying once.
// Decoupled schemes only need the operator's confirmation; the retried
// dialog then passes.
func (c *Client) withTanRetry(ctx context.Context, operation func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := operation()
	if err == nil || c.config.Tan == nil || !isTanChallenge(err) {
		return err
	}

	c.logger.Info().Msg("bank requires a TAN confirmation")

	if _, tanErr := c.config.Tan(err.Error()); tanErr != nil {
		return fmt.Errorf("TAN challenge unanswered: %w", tanErr)
	}

	return operation()
}

// FinTS response codes signalling a pending strong-authentication challenge.
var tanChallengeCodes = []string{"3920", "3956", "9075"}

func isTanChallenge(err error) bool {
	message := err.Error()
	for _, code := range tanChallengeCodes {
		if strings.Contains(message, code) {
			return true
		}
	}

	return false
}

// accountIBAN derives an IBAN from the account connection. Derivation
// failures leave the IBAN empty; such accounts are not deduplicated.
func (c *Client) accountIBAN(connection hbci.AccountConnection) string {
	derived, err := iban.FromGermanAccount(connection.BankID, connection.AccountID)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("bank_code", connection.BankID).
			Str("number", connection.AccountID).
			Msg("could not derive IBAN")
		return ""
	}

	return derived
}

func (c *Client) counterpartyIBAN(record hbci.AccountTransaction) string {
	derived, err := iban.FromGermanAccount(record.BankID, record.AccountID)
	if err != nil {
		return ""
	}

	return derived
}
