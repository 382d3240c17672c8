package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ledgerCmd is the parent command for ledger maintenance.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the list of scanned log files",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the log files already scanned",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := setup(nil)
		if err != nil {
			return err
		}
		defer l.Sync()

		ledger, err := svc.Ledger(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, name := range ledger.Names() {
			fmt.Fprintln(out, name)
		}
		dim.Fprintf(out, "%d file(s)\n", ledger.Len())
		return nil
	},
}

var ledgerForgetCmd = &cobra.Command{
	Use:   "forget <file>...",
	Short: "Forget log files so the next scan parses them again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := setup(nil)
		if err != nil {
			return err
		}
		defer l.Sync()

		removed, err := svc.Forget(context.Background(), args...)
		if err != nil {
			return fmt.Errorf("failed to update ledger: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(removed) == 0 {
			warn.Fprintln(out, "No matching entries")
			return nil
		}
		for _, name := range removed {
			fmt.Fprintf(out, "%s %s\n", good.Sprint("forgot"), name)
		}
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd, ledgerForgetCmd)
	RootCmd.AddCommand(ledgerCmd)
}
