package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"botdash/internal/state"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Print or set the colour theme",
		Long:      `Without an argument prints the saved theme. With one, saves it for both terminal UIs.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{state.ThemeLight, state.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := themeStore()
			if len(args) == 0 {
				theme, err := store.Theme()
				if err != nil {
					return fmt.Errorf("failed to read theme: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			if err := state.ValidateTheme(args[0]); err != nil {
				return err
			}
			if err := store.SetTheme(args[0]); err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
			return nil
		},
	}
}
