package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var entitiesCmd = &cobra.Command{
	Use:     "entities",
	Aliases: []string{"ls"},
	Short:   "List the registry's active companies",
	RunE:    runEntities,
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reg, closer, err := newRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	entities, err := reg.ListActiveEntities(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(cmd.OutOrStdout(), tablewriter.WithConfig(tablewriter.Config{}))
	table.Header("ID", "Company", "Trade Name", "Website")
	for _, e := range entities {
		if err := table.Append(string(e.ID), e.CanonicalName, e.TradeName, e.Website); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to render row: %v\n", err)
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d active companies\n", len(entities))
	return nil
}
