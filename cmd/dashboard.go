package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"botdash/internal/api"
	"botdash/internal/config"
	"botdash/internal/dashboard"
	"botdash/internal/tui/controller"
	"botdash/internal/tui/model"
	"botdash/pkg/logging"
)

// errLoginRequired ends a non-interactive run without a valid session.
var errLoginRequired = errors.New("login required")

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Control the bot from its web dashboard API",
		Long: `Opens the bot dashboard: bot status and servers, music controls,
temp voice and custom commands, signed in with the session cookie from
backend.sessionCookie (or BOTDASH_SESSION_COOKIE).

Without a valid session the login address is shown. Log in there with
Discord in a browser, copy the session cookie into the configuration and
retry.

With --no-tui a one-shot summary is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			tui, err := interactive()
			if err != nil {
				return err
			}

			client, err := newBackendClient(cfg)
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()
			text := dashboard.StringsFor(cfg.UI.Locale)

			if !tui {
				initCLILogging()
				defer logging.Close()
				return runDashboardSummary(cmd.Context(), cmd.OutOrStdout(), client, text)
			}

			logChan := initTUILogging(cfg)
			defer logging.Close()

			p := controller.NewDashboardProgram(model.DashboardConfig{
				Backend:    client,
				Strings:    text,
				BackendURL: client.BaseURL(),
				HasSession: client.HasSession(),
				Locale:     cfg.UI.Locale,
				ThemeStore: themeStore(),
				DebugMode:  debugMode,
				LogChannel: logChan,
			})
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running dashboard: %w", err)
			}
			return nil
		},
	}
}

func newBackendClient(cfg config.BotdashConfig) (*api.Client, error) {
	client, err := api.NewClient(api.Options{
		BaseURL:           cfg.Backend.URL,
		SessionCookieName: cfg.Backend.SessionCookieName,
		SessionCookie:     cfg.Backend.SessionCookie,
		Timeout:           cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// runDashboardSummary logs in, loads the overview and the custom commands,
// and prints them.
func runDashboardSummary(ctx context.Context, w io.Writer, backend dashboard.Backend, text dashboard.Strings) error {
	var loginURL string
	ctrl := dashboard.NewController(backend, dashboard.NavigatorFunc(func(url string) { loginURL = url }), text)

	dashboard.Run(ctx, ctrl, ctrl.CheckAuth()...)
	if ctrl.Phase() != dashboard.PhaseAuthenticated {
		fmt.Fprintf(w, "Not logged in. Log in with Discord at %s and set the session cookie.\n", loginURL)
		return errLoginRequired
	}

	tasks, err := ctrl.SwitchSection(string(dashboard.SectionCustom))
	if err != nil {
		return err
	}
	dashboard.Run(ctx, ctrl, tasks...)
	if ctrl.Phase() != dashboard.PhaseAuthenticated {
		fmt.Fprintf(w, "Session expired. Log in again at %s.\n", loginURL)
		return errLoginRequired
	}

	printDashboard(w, ctrl.State(), text)
	return nil
}
