package cmd

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"botdash/internal/catalog"
	"botdash/pkg/logging"
)

func newSearchCmd() *cobra.Command {
	var (
		source   string
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search the bot's command reference",
		Long: `Prints the commands whose name, description, usage or examples contain
term (case-insensitive), limited to --category when given, followed by the
total, category and result counts.`,
		Example: `  botdash search play
  botdash search --category music --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging()
			defer logging.Close()

			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Catalog.Source
			}

			state := catalog.Unfiltered()
			if len(args) == 1 {
				state.SearchTerm = args[0]
			}
			if category != "" {
				state.Category = category
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), source, state, cfg.Backend.Timeout, asJSON)
		},
	}

	cmd.Flags().StringVar(&source, "catalog", "", "catalog file path or http(s) URL (default catalog.source)")
	cmd.Flags().StringVar(&category, "category", "", "only show commands of this category key")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func runSearch(ctx context.Context, w io.Writer, source string, state catalog.FilterState, timeout time.Duration, asJSON bool) error {
	cat, err := loadCatalog(ctx, source, timeout)
	if err != nil {
		return err
	}
	return printResult(w, catalog.Search(cat.Commands(), state), asJSON)
}
