package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/brandmap/brandmap/internal/config"
	"github.com/brandmap/brandmap/internal/sources/firecrawl"
	"github.com/brandmap/brandmap/pkg/ingest"
	"github.com/brandmap/brandmap/pkg/logging"
	"github.com/brandmap/brandmap/pkg/types"
)

var (
	ingestInput    string
	ingestFromURL  string
	ingestWorkers  int
	ingestInterval time.Duration
	ingestKind     string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Resolve and ingest a batch of scraped brand assets",
	Long: `Ingest matches each scraped asset label against the registry's active
companies, downloads the asset, stores it under the company's
deterministic key, and upserts the company's media record.

The batch comes either from a JSON file of {label, asset_source_url}
items (--input) or straight from a member-directory page scraped
through Firecrawl (--from-url). Re-running the same batch is safe:
assets overwrite in place and media records are updated, never
duplicated.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestInput, "input", "i", "", "JSON file of batch items")
	ingestCmd.Flags().StringVar(&ingestFromURL, "from-url", "", "member-directory page to scrape for assets")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", ingest.DefaultWorkers, "concurrent download workers")
	ingestCmd.Flags().DurationVar(&ingestInterval, "interval", ingest.DefaultMinInterval, "minimum interval between downloads (0 disables)")
	ingestCmd.Flags().StringVar(&ingestKind, "kind", string(types.MediaKindLogo), "asset kind to ingest")
	ingestCmd.MarkFlagsMutuallyExclusive("input", "from-url")
	ingestCmd.MarkFlagsOneRequired("input", "from-url")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	items, err := loadBatch(cmd)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no items to ingest")
		return nil
	}

	reg, closer, err := newRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	store, err := newStore()
	if err != nil {
		return err
	}
	if err := ensureBucket(ctx, store); err != nil {
		return err
	}

	pipeline := ingest.New(reg, store,
		ingest.WithWorkers(ingestWorkers),
		ingest.WithMinInterval(ingestInterval),
		ingest.WithKind(types.MediaKind(ingestKind)),
	)

	logger.Info().Int("items", len(items)).Int("workers", ingestWorkers).Msg("Starting ingestion batch")
	report, err := pipeline.Ingest(ctx, items)
	if err != nil {
		return err
	}

	renderReport(cmd, report)
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, len(items))
	}
	return nil
}

// loadBatch builds the batch items from --input or --from-url.
func loadBatch(cmd *cobra.Command) ([]ingest.Item, error) {
	if ingestInput != "" {
		return ingest.LoadItems(ingestInput)
	}

	apiKey, err := config.FirecrawlAPIKey()
	if err != nil {
		return nil, err
	}
	doc, err := firecrawl.New(apiKey).Scrape(cmd.Context(), ingestFromURL, firecrawl.FormatMarkdown)
	if err != nil {
		return nil, err
	}

	images := doc.Images()
	items := make([]ingest.Item, 0, len(images))
	for _, img := range images {
		items = append(items, ingest.Item{
			Label:     img.Alt,
			SourceURL: img.URL,
			Notes:     "scraped from " + ingestFromURL,
		})
	}
	return items, nil
}

// renderReport prints the per-item outcome table followed by the batch
// summary line.
func renderReport(cmd *cobra.Command, report *types.Report) {
	w := cmd.OutOrStdout()

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{}))
	table.Header("#", "Label", "Status", "Match", "Detail")
	for _, o := range report.Outcomes {
		detail := o.URL
		if o.Status != types.ItemProcessed {
			detail = o.Reason
		}
		if err := table.Append(o.Index, o.Label, o.Status.String(), o.Tier.String(), detail); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to render row: %v\n", err)
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to render table: %v\n", err)
	}

	fmt.Fprint(w, report.Summary())
}
