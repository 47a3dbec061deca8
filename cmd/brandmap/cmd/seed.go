package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/logging"
	"github.com/brandmap/brandmap/pkg/registry"
	"github.com/brandmap/brandmap/pkg/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <members.yaml>",
	Short: "Seed the registry from a YAML member roster",
	Long: `Seed loads a curated YAML member roster into the registry. Entries
whose normalized name already exists are skipped, so re-seeding after
roster updates only inserts the new members.

Seeding requires a local registry (--db); the hosted registry is
maintained through its own tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	entities, err := seed.LoadEntities(args[0])
	if err != nil {
		return err
	}

	reg, closer, err := newRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	seeder, ok := reg.(registry.Seeder)
	if !ok {
		return &errors.ConfigError{
			Component: "seed",
			Message:   "the selected registry does not support seeding; use --db",
		}
	}

	inserted, err := seeder.SeedEntities(ctx, entities)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Int("loaded", len(entities)).
		Int("inserted", inserted).
		Msg("Seeded registry")
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d members (%d already present)\n",
		inserted, len(entities), len(entities)-inserted)
	return nil
}
