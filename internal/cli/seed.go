package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okayama-mayu/rails-engine/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate and fill the store with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg

			store, err := openStore(cfg.Store)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			sum, err := seed.Generate(cmd.Context(), store, seed.Options{
				Merchants:        cfg.Seed.Merchants,
				ItemsPerMerchant: cfg.Seed.ItemsPerMerchant,
				Customers:        cfg.Seed.Customers,
				Invoices:         cfg.Seed.Invoices,
				RandomSeed:       cfg.Seed.RandomSeed,
				Force:            force,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sum.Skipped {
				fmt.Fprintln(out, "store already seeded, skipping (use --force to seed anyway)")
				return nil
			}
			fmt.Fprintf(out, "seeded %d merchants, %d items, %d customers, %d invoices, %d invoice items, %d transactions\n",
				sum.Merchants, sum.Items, sum.Customers, sum.Invoices, sum.InvoiceItems, sum.Transactions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even if merchants already exist")
	return cmd
}
