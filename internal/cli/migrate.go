package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(rootOpts.cfg.Store)
			if err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			defer store.Close()

			slog.Info("Schema up to date", "driver", rootOpts.cfg.Store.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
