package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/registry"
	"github.com/brandmap/brandmap/pkg/resolve"
	"github.com/brandmap/brandmap/pkg/seed"
	"github.com/brandmap/brandmap/pkg/types"
)

var (
	checkKind    string
	checkMapping string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report active companies missing an asset kind",
	Long: `Check lists the active companies that have no media record of the
given kind, so gaps left by skipped or failed batch items can be
chased down by hand.

With --mapping, it also validates a hand-curated CSV of asset files
and company names against the registry and reports rows whose company
no longer resolves.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkKind, "kind", string(types.MediaKindLogo), "asset kind to check coverage for")
	checkCmd.Flags().StringVar(&checkMapping, "mapping", "", "CSV mapping of asset files to company names to validate")
}

// missingMediaLister is implemented by registries that can answer the
// coverage query directly.
type missingMediaLister interface {
	MissingMedia(ctx context.Context, kind types.MediaKind) ([]types.Entity, error)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind := types.MediaKind(checkKind)

	reg, closer, err := newRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	missing, err := missingMedia(ctx, reg, kind)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(missing) == 0 {
		fmt.Fprintf(w, "all active companies have a %s\n", kind)
		return nil
	}
	for _, e := range missing {
		fmt.Fprintf(w, "%s\t%s\n", e.ID, e.CanonicalName)
	}
	fmt.Fprintf(w, "%d companies missing a %s\n", len(missing), kind)

	if checkMapping != "" {
		return checkMappingFile(ctx, cmd, reg)
	}
	return nil
}

// checkMappingFile resolves each mapping row's company name against the
// registry and reports the rows that no longer match anything.
func checkMappingFile(ctx context.Context, cmd *cobra.Command, reg registry.Registry) error {
	rows, err := seed.LoadMapping(checkMapping)
	if err != nil {
		return err
	}

	entities, err := reg.ListActiveEntities(ctx)
	if err != nil {
		return err
	}
	resolver := resolve.New(entities)

	w := cmd.OutOrStdout()
	unmatched := 0
	for _, row := range rows {
		if match, _ := resolver.Resolve(row.CompanyName); match.Resolved() {
			continue
		}
		unmatched++
		fmt.Fprintf(w, "unmatched mapping row: %s -> %q\n", row.Filename, row.CompanyName)
	}
	if unmatched > 0 {
		return fmt.Errorf("%d of %d mapping rows do not resolve", unmatched, len(rows))
	}
	fmt.Fprintf(w, "all %d mapping rows resolve\n", len(rows))
	return nil
}

// missingMedia prefers the registry's own coverage query and falls back to
// a per-company lookup loop for registries without one.
func missingMedia(ctx context.Context, reg registry.Registry, kind types.MediaKind) ([]types.Entity, error) {
	if lister, ok := reg.(missingMediaLister); ok {
		return lister.MissingMedia(ctx, kind)
	}

	entities, err := reg.ListActiveEntities(ctx)
	if err != nil {
		return nil, err
	}
	var missing []types.Entity
	for _, e := range entities {
		_, err := reg.FindMediaRecord(ctx, e.ID, kind)
		switch {
		case errors.IsNotFound(err):
			missing = append(missing, e)
		case err != nil:
			return nil, err
		}
	}
	return missing, nil
}
