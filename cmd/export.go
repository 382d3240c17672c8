package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// exportCmd prints one playlist's history.
var exportCmd = &cobra.Command{
	Use:   "export <playlist>",
	Short: "Print the CSV history of one playlist",
	Long: `Print the stored history of one playlist in the configured CSV layout.
The playlist can be given as 1v1, 2v2, solo-3v3, 3v3, by its display name
("Ranked 2v2") or by its number (11).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := setup(nil)
		if err != nil {
			return err
		}
		defer l.Sync()

		if _, err := svc.Export(context.Background(), cmd.OutOrStdout(), args[0]); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
