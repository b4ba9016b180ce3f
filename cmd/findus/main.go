// Command findus imports bank account transactions over FinTS/HBCI and
// renders balance-over-time charts from the stored history.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "findus",
		Short: "Bank account import and balance reporting",
		Long:  `findus fetches account transactions from your bank via FinTS/HBCI, stores them, and plots balance history charts.`,
	}

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
