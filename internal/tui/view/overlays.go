package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botdash/internal/tui/design"
)

func renderHelpOverlay(helpView string, width, height int) string {
	title := design.HelpTitleStyle.Render("Keyboard Shortcuts")
	box := design.CenteredOverlayContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, title, helpView, "", design.DimStyle.Render("Press ? or esc to close")))
	if height <= 0 {
		return design.CenterHorizontal(width, box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderLogOverlay(logView string, width int) string {
	title := design.LogPanelTitleStyle.Render("Activity Log")
	footer := design.DimStyle.Render("y copy · L/esc close")
	body := lipgloss.JoinVertical(lipgloss.Left, title, logView, footer)
	w := width - design.LogOverlayStyle.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return design.LogOverlayStyle.Width(w).Render(body)
}

// PrepareLogContent styles activity log lines for the log viewport.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}

// LogViewportSize is the log viewport's size inside the overlay.
func LogViewportSize(width, height int) (int, int) {
	w := width - design.LogOverlayStyle.GetHorizontalFrameSize()
	h := height - design.LogOverlayStyle.GetVerticalFrameSize() - 3
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}
