package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"botdash/internal/tui/model"
)

// NewCatalogProgram creates the command catalog program.
func NewCatalogProgram(cfg model.CatalogConfig) *tea.Program {
	app := NewCatalogApp(model.NewCatalogModel(cfg))
	return tea.NewProgram(app, tea.WithAltScreen())
}

// NewDashboardProgram creates the dashboard program.
func NewDashboardProgram(cfg model.DashboardConfig) *tea.Program {
	app := NewDashboardApp(model.NewDashboardModel(cfg))
	return tea.NewProgram(app, tea.WithAltScreen())
}
