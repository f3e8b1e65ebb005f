package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	debugMode bool
	noTUI     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "botdash",
	Short: "Browse a Discord bot's commands and control it from the terminal",
	Long: `botdash is a terminal client for a Discord bot's web dashboard.

It browses the bot's command reference (botdash commands, botdash search) and
drives the dashboard API: bot status, servers, music controls and custom
commands (botdash dashboard). The session cookie of a browser that has logged
in with Discord is used to authenticate against the backend.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed requests)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "botdash version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default layers ~/.config/botdash/config.yaml and ./.botdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noTUI, "no-tui", false, "print results instead of starting the terminal UI")

	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
