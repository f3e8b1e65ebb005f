package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"botdash/internal/mcpserver"
	"botdash/pkg/logging"
)

func newMCPCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the command reference to MCP clients over stdio",
		Long: `Starts an MCP server on stdin/stdout exposing two read-only tools:

  search_commands  filter the catalog by term and category
  list_categories  list the category keys and display names

Logs go to stderr so they do not interfere with the protocol.`,
		Args: cobra.NoArgs,
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

			cat, err := loadCatalog(cmd.Context(), source, cfg.Backend.Timeout)
			if err != nil {
				return err
			}
			return mcpserver.New(cat, rootCmd.Version).Serve(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&source, "catalog", "", "catalog file path or http(s) URL (default catalog.source)")
	return cmd
}
