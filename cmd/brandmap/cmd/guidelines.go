package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/brandmap/brandmap/internal/config"
	"github.com/brandmap/brandmap/internal/sources/firecrawl"
	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/guidelines"
	"github.com/brandmap/brandmap/pkg/logging"
)

var guidelinesOutput string

var guidelinesCmd = &cobra.Command{
	Use:   "guidelines <url>",
	Short: "Scrape a site's branding and render brand guidelines",
	Long: `Guidelines scrapes a company website through Firecrawl's branding
format and renders the extracted color palette, typography, and brand
personality as a markdown document.`,
	Args: cobra.ExactArgs(1),
	RunE: runGuidelines,
}

func init() {
	rootCmd.AddCommand(guidelinesCmd)

	guidelinesCmd.Flags().StringVarP(&guidelinesOutput, "output", "o", "", "write markdown to a file instead of stdout")
}

func runGuidelines(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	url := args[0]

	apiKey, err := config.FirecrawlAPIKey()
	if err != nil {
		return err
	}

	doc, err := firecrawl.New(apiKey).Scrape(ctx, url, firecrawl.FormatBranding)
	if err != nil {
		return err
	}
	if doc.Branding == nil {
		return errors.NewValidationError("branding", nil, "no branding data returned for "+url)
	}

	w := cmd.OutOrStdout()
	if guidelinesOutput != "" {
		f, err := os.Create(guidelinesOutput)
		if err != nil {
			return errors.WrapIO("create", guidelinesOutput, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := guidelines.Render(w, doc.Branding, url); err != nil {
		return err
	}
	if guidelinesOutput != "" {
		logging.FromContext(ctx).Info().Str("path", guidelinesOutput).Msg("Wrote brand guidelines")
	}
	return nil
}
