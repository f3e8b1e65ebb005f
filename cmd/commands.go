package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"botdash/internal/catalog"
	"botdash/internal/tui/controller"
	"botdash/internal/tui/model"
	"botdash/pkg/logging"
)

func newCommandsCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Browse the bot's command reference",
		Long: `Opens an interactive reference of the bot's commands with live search,
category filters and one-key copy of a command's usage.

The catalog is read from catalog.source, or from --catalog when given. Both
a file path and an http(s) URL are accepted; "embedded" (the default) is the
catalog shipped inside the binary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Catalog.Source
			}

			tui, err := interactive()
			if err != nil {
				return err
			}
			if !tui {
				initCLILogging()
				defer logging.Close()
				return runSearch(cmd.Context(), cmd.OutOrStdout(), source, catalog.Unfiltered(), cfg.Backend.Timeout, false)
			}

			logChan := initTUILogging(cfg)
			defer logging.Close()

			p := controller.NewCatalogProgram(model.CatalogConfig{
				Source:     source,
				Timeout:    cfg.Backend.Timeout,
				ThemeStore: themeStore(),
				DebugMode:  debugMode,
				LogChannel: logChan,
			})
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running command browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "catalog", "", "catalog file path or http(s) URL (default catalog.source)")
	return cmd
}

// loadCatalog reads the catalog with the request timeout applied.
func loadCatalog(ctx context.Context, source string, timeout time.Duration) (*catalog.Catalog, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	cat, err := catalog.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}
	logging.Debug("CLI", "Loaded %d commands from %s", cat.Len(), source)
	return cat, nil
}
