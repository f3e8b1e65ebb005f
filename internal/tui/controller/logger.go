package controller

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"botdash/internal/tui/model"
	"botdash/internal/tui/view"
	"botdash/pkg/logging"
)

const tuiSubsystem = "TUI"

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

func refreshLogViewport(log *model.ActivityLog, vp *viewport.Model) {
	if !log.Dirty {
		return
	}
	atBottom := vp.AtBottom()
	vp.SetContent(view.PrepareLogContent(log.Lines))
	if atBottom {
		vp.GotoBottom()
	}
	log.Dirty = false
}

// handleLogOverlayKey serves the log overlay of either program. It reports
// whether the overlay should close.
func handleLogOverlayKey(msg tea.KeyMsg, toggle key.Binding, log *model.ActivityLog, vp *viewport.Model, bar *model.StatusBar) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, toggle) || msg.Type == tea.KeyEsc:
		return true, nil
	case msg.String() == "y":
		if err := copyToClipboard(strings.Join(log.Lines, "\n")); err != nil {
			logging.Error(tuiSubsystem, err, "Failed to copy logs")
			return false, bar.Set("Copy logs failed", model.StatusBarError, model.StatusMessageTTL)
		}
		return false, bar.Set("Logs copied to clipboard", model.StatusBarSuccess, model.StatusMessageTTL)
	default:
		var cmd tea.Cmd
		*vp, cmd = vp.Update(msg)
		return false, cmd
	}
}

func toggleTheme(toggle func() error, bar *model.StatusBar, theme func() string) tea.Cmd {
	if err := toggle(); err != nil {
		logging.Error(tuiSubsystem, err, "Failed to save theme preference")
		return bar.Set("Theme changed but could not be saved", model.StatusBarWarning, model.StatusMessageTTL)
	}
	return bar.Set("Theme: "+theme(), model.StatusBarInfo, model.StatusMessageTTL)
}
