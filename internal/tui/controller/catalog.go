package controller

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"botdash/internal/tui/model"
	"botdash/internal/tui/view"
	"botdash/pkg/logging"
)

const catalogSubsystem = "Catalog"

// CatalogApp wraps the catalog model to handle updates and views
type CatalogApp struct {
	model *model.CatalogModel
}

// NewCatalogApp creates a new app wrapper
func NewCatalogApp(m *model.CatalogModel) CatalogApp {
	return CatalogApp{model: m}
}

// Model exposes the wrapped state, mainly for tests.
func (a CatalogApp) Model() *model.CatalogModel {
	return a.model
}

// Init implements tea.Model
func (a CatalogApp) Init() tea.Cmd {
	return a.model.Init()
}

// View implements tea.Model
func (a CatalogApp) View() string {
	return view.RenderCatalog(a.model)
}

// Update implements tea.Model
func (a CatalogApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m := a.model

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Search.Width = msg.Width - 8
		m.Help.Width = msg.Width
		m.LogViewport.Width, m.LogViewport.Height = view.LogViewportSize(msg.Width, msg.Height)
		m.RefreshDetail()
		return a, nil

	case model.CatalogLoadedMsg:
		if msg.Err != nil {
			m.Load = model.LoadFailed
			m.LoadErr = msg.Err
			logging.Error(catalogSubsystem, msg.Err, "Failed to load commands from %s", m.Source)
			return a, nil
		}
		m.SetCatalog(msg.Catalog)
		logging.Info(catalogSubsystem, "Loaded %d commands from %s", len(m.All), m.Source)
		return a, nil

	case model.CopyRevertMsg:
		m.RevertCopy(msg)
		return a, nil

	case model.ClearStatusBarMsg:
		m.StatusBar.Clear()
		return a, nil

	case model.NewLogEntryMsg:
		m.ActivityLog.Add(msg.Entry, m.DebugMode)
		refreshLogViewport(&m.ActivityLog, &m.LogViewport)
		return a, model.ListenForLogEntriesCmd(m.LogChannel)

	case spinner.TickMsg:
		if m.Load != model.LoadPending {
			return a, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, handleCatalogKey(m, msg)
	}

	if m.Search.Focused() {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func handleCatalogKey(m *model.CatalogModel, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch m.Mode {
	case model.CatalogModeHelpOverlay:
		if key.Matches(msg, m.Keys.Help) || msg.Type == tea.KeyEsc {
			m.Mode = model.CatalogModeBrowse
		}
		return nil
	case model.CatalogModeLogOverlay:
		closed, cmd := handleLogOverlayKey(msg, m.Keys.ToggleLog, &m.ActivityLog, &m.LogViewport, &m.StatusBar)
		if closed {
			m.Mode = model.CatalogModeBrowse
		}
		return cmd
	}

	// Typed characters belong to the search field while it has focus.
	if m.Search.Focused() && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
		return updateSearch(m, msg)
	}

	switch {
	case key.Matches(msg, m.Keys.FocusSearch):
		return m.Search.Focus()

	case key.Matches(msg, m.Keys.ClearSearch):
		if m.Search.Value() != "" {
			m.Search.SetValue("")
			m.Selected = 0
			m.ApplyFilter()
			return nil
		}
		m.Search.Blur()
		return nil

	case key.Matches(msg, m.Keys.NextCategory):
		m.CycleCategory(1)
		return nil

	case key.Matches(msg, m.Keys.PrevCategory):
		m.CycleCategory(-1)
		return nil

	case key.Matches(msg, m.Keys.Up):
		m.MoveSelection(-1)
		return nil

	case key.Matches(msg, m.Keys.Down):
		m.MoveSelection(1)
		return nil

	case key.Matches(msg, m.Keys.PageUp):
		m.MoveSelection(-cardsPerPage(m))
		return nil

	case key.Matches(msg, m.Keys.PageDown):
		m.MoveSelection(cardsPerPage(m))
		return nil

	case key.Matches(msg, m.Keys.Top):
		m.MoveSelection(-len(m.Visible))
		return nil

	case key.Matches(msg, m.Keys.Copy):
		return m.CopySelected()

	case key.Matches(msg, m.Keys.ToggleDetail):
		m.ShowDetail = !m.ShowDetail
		m.RefreshDetail()
		return nil

	case key.Matches(msg, m.Keys.ToggleDark):
		return toggleTheme(m.ToggleTheme, &m.StatusBar, func() string { return m.Theme })

	case key.Matches(msg, m.Keys.ToggleLog):
		m.Mode = model.CatalogModeLogOverlay
		m.LogViewport.GotoBottom()
		return nil

	case key.Matches(msg, m.Keys.Help):
		m.Mode = model.CatalogModeHelpOverlay
		return nil

	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit
	}

	if m.Search.Focused() {
		return updateSearch(m, msg)
	}
	return nil
}

// updateSearch feeds msg to the search field and refilters on every change.
func updateSearch(m *model.CatalogModel, msg tea.Msg) tea.Cmd {
	before := m.Search.Value()
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != before {
		m.Selected = 0
		m.ApplyFilter()
	}
	return cmd
}

func cardsPerPage(m *model.CatalogModel) int {
	n := (m.Height - 12) / 7
	if n < 1 {
		return 1
	}
	return n
}
