package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/theCalcaholic/findus/internal/adapter/bank/fints"
	"github.com/theCalcaholic/findus/internal/usecase"
)

func newImportCmd() *cobra.Command {
	var (
		lookback int
		atomic   bool
		bankURL  string
	)

	cmd := &cobra.Command{
		Use:   "import <bank-code> <user-id>",
		Short: "Fetch recent transactions from the bank and store them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1], lookback, atomic, bankURL)
		},
	}

	cmd.Flags().IntVar(&lookback, "lookback", 0, "days of history to fetch (defaults to IMPORT_LOOKBACK_DAYS)")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "commit each account's whole window in one storage transaction")
	cmd.Flags().StringVar(&bankURL, "url", "", "FinTS endpoint URL (defaults to the bank registry lookup)")

	return cmd
}

func runImport(cmd *cobra.Command, bankCode, userID string, lookback int, atomic bool, bankURL string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	pin, err := promptPIN(userID)
	if err != nil {
		return err
	}

	if bankURL == "" {
		bankURL = a.cfg.FinTSURL
	}

	bank, err := fints.New(fints.Config{
		BankCode:  bankCode,
		UserID:    userID,
		PIN:       pin,
		URL:       bankURL,
		ProductID: a.cfg.FinTSProductID,
		Tan:       promptTAN,
	}, a.logger)
	if err != nil {
		return err
	}

	if lookback == 0 {
		lookback = a.cfg.ImportLookbackDays
	}

	importer := usecase.NewImportUseCase(
		bank,
		a.txManager,
		a.accountRepo,
		a.transactionRepo,
		a.idGen,
		a.retrier,
		a.metrics,
		a.logger,
		lookback,
	).WithAtomicWindows(atomic)

	result, err := importer.Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	a.logger.Info().
		Int("accounts_created", result.AccountsCreated).
		Int("transactions_imported", result.TransactionsImported).
		Msg("import finished")

	return nil
}

func promptPIN(userID string) (string, error) {
	fmt.Fprintf(os.Stderr, "PIN for %s: ", userID)
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading PIN: %w", err)
	}

	return string(pin), nil
}

// promptTAN blocks until the operator answers a strong-authentication
// challenge. An empty answer means the challenge was confirmed out of band,
// for example in a banking app.
func promptTAN(challenge string) (string, error) {
	fmt.Fprintf(os.Stderr, "Bank challenge: %s\n", challenge)
	fmt.Fprint(os.Stderr, "TAN (press enter after app confirmation): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading TAN: %w", err)
	}

	return strings.TrimSpace(line), nil
}
