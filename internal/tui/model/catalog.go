package model

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"botdash/internal/catalog"
	"botdash/internal/state"
	"botdash/internal/tui/design"
	"botdash/pkg/logging"
)

// LoadState tracks the one-shot catalog load.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)

// CatalogMode represents the current mode of the catalog browser
type CatalogMode int

const (
	CatalogModeBrowse CatalogMode = iota
	CatalogModeHelpOverlay
	CatalogModeLogOverlay
)

// CatalogLoadedMsg carries the result of the initial load.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// CopyRevertMsg ends the "copied" feedback of the copy started with Token.
type CopyRevertMsg struct {
	Token int
}

// LoaderFunc loads a catalog from a path or URL.
type LoaderFunc func(ctx context.Context, source string) (*catalog.Catalog, error)

// CatalogConfig is what the command builds the catalog browser from.
type CatalogConfig struct {
	Source     string
	Timeout    time.Duration
	ThemeStore state.ThemeStore
	DebugMode  bool
	LogChannel <-chan logging.LogEntry
	Loader     LoaderFunc
	Clipboard  func(string) error
}

// CatalogModel is the state of the command catalog browser.
type CatalogModel struct {
	Width  int
	Height int

	Source  string
	Timeout time.Duration
	Loader  LoaderFunc

	Load    LoadState
	LoadErr error

	All           []catalog.Command
	Visible       []catalog.Command
	Categories    []catalog.CategoryOption
	CategoryIndex int
	Selected      int

	Search     textinput.Model
	Mode       CatalogMode
	ShowDetail bool
	Detail     string

	// CopiedName is the command whose copy control shows the feedback
	// until the matching CopyRevertMsg arrives.
	CopiedName string
	CopyToken  int
	Clipboard  func(string) error

	Theme      string
	ThemeStore state.ThemeStore
	Renderer   *glamour.TermRenderer
	rendererW  int
	rendererT  string

	Keys        CatalogKeyMap
	Help        help.Model
	Spinner     spinner.Model
	StatusBar   StatusBar
	DebugMode   bool
	ActivityLog ActivityLog
	LogViewport viewport.Model
	LogChannel  <-chan logging.LogEntry
}

// NewCatalogModel builds the browser in its loading state.
func NewCatalogModel(cfg CatalogConfig) *CatalogModel {
	search := textinput.New()
	search.Placeholder = "Search commands..."
	search.Prompt = "🔍 "
	search.CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = design.TextInfoStyle

	store := cfg.ThemeStore
	if store == nil {
		store = state.NewMemoryThemeStore(state.DefaultTheme)
	}
	theme, err := store.Theme()
	if err != nil {
		logging.Warn("Catalog", "Could not read theme preference: %v", err)
		theme = state.DefaultTheme
	}
	design.ApplyTheme(theme)

	loader := cfg.Loader
	if loader == nil {
		loader = catalog.Load
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	return &CatalogModel{
		Source:      cfg.Source,
		Timeout:     cfg.Timeout,
		Loader:      loader,
		Load:        LoadPending,
		Visible:     []catalog.Command{},
		Categories:  []catalog.CategoryOption{{Key: catalog.AllCategories, Name: "All"}},
		Search:      search,
		ShowDetail:  true,
		Clipboard:   copyFn,
		Theme:       theme,
		ThemeStore:  store,
		Keys:        DefaultCatalogKeyMap(),
		Help:        help.New(),
		Spinner:     s,
		DebugMode:   cfg.DebugMode,
		LogViewport: viewport.New(0, 0),
		LogChannel:  cfg.LogChannel,
	}
}

// Init starts the load, the spinner and the log listener.
func (m *CatalogModel) Init() tea.Cmd {
	return tea.Batch(m.LoadCmd(), m.Spinner.Tick, ListenForLogEntriesCmd(m.LogChannel))
}

// LoadCmd reads the catalog off the UI loop.
func (m *CatalogModel) LoadCmd() tea.Cmd {
	loader, source, timeout := m.Loader, m.Source, m.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c, err := loader(ctx, source)
		return CatalogLoadedMsg{Catalog: c, Err: err}
	}
}

// SetCatalog installs a loaded catalog and shows the unfiltered set.
func (m *CatalogModel) SetCatalog(c *catalog.Catalog) {
	m.Load = LoadReady
	m.All = c.Commands()
	m.Categories = append([]catalog.CategoryOption{{Key: catalog.AllCategories, Name: "All"}}, catalog.Categories(m.All)...)
	m.CategoryIndex = 0
	m.ApplyFilter()
}

// FilterState is the current search and category selection.
func (m *CatalogModel) FilterState() catalog.FilterState {
	category := catalog.AllCategories
	if m.CategoryIndex >= 0 && m.CategoryIndex < len(m.Categories) {
		category = m.Categories[m.CategoryIndex].Key
	}
	return catalog.FilterState{SearchTerm: m.Search.Value(), Category: category}
}

// ApplyFilter recomputes the visible commands and keeps the selection in range.
func (m *CatalogModel) ApplyFilter() {
	m.Visible = catalog.Filter(m.All, m.FilterState())
	if m.Selected >= len(m.Visible) {
		m.Selected = len(m.Visible) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
	m.RefreshDetail()
}

// Counters reflects the latest catalog and filter state.
func (m *CatalogModel) Counters() catalog.Counters {
	return catalog.Stats(m.All, m.Visible)
}

// SelectedCommand returns the highlighted card, if any.
func (m *CatalogModel) SelectedCommand() (catalog.Command, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Visible) {
		return catalog.Command{}, false
	}
	return m.Visible[m.Selected], true
}

// CycleCategory moves the category filter by delta, wrapping around.
func (m *CatalogModel) CycleCategory(delta int) {
	n := len(m.Categories)
	if n == 0 {
		return
	}
	m.CategoryIndex = ((m.CategoryIndex+delta)%n + n) % n
	m.Selected = 0
	m.ApplyFilter()
}

// MoveSelection moves the highlighted card by delta, clamped to the results.
func (m *CatalogModel) MoveSelection(delta int) {
	if len(m.Visible) == 0 {
		return
	}
	m.Selected += delta
	if m.Selected < 0 {
		m.Selected = 0
	}
	if m.Selected >= len(m.Visible) {
		m.Selected = len(m.Visible) - 1
	}
	m.RefreshDetail()
}

// CopySelected copies the highlighted command's usage. A clipboard failure is
// logged and otherwise ignored.
func (m *CatalogModel) CopySelected() tea.Cmd {
	cmd, ok := m.SelectedCommand()
	if !ok {
		return nil
	}
	if err := m.Clipboard(cmd.Usage); err != nil {
		logging.Error("Catalog", err, "Failed to copy usage of %s", cmd.Name)
		return nil
	}
	m.CopyToken++
	m.CopiedName = cmd.Name
	token := m.CopyToken
	return tea.Tick(CopiedFeedbackTTL, func(time.Time) tea.Msg {
		return CopyRevertMsg{Token: token}
	})
}

// RevertCopy ends the feedback if msg belongs to the latest copy.
func (m *CatalogModel) RevertCopy(msg CopyRevertMsg) {
	if msg.Token == m.CopyToken {
		m.CopiedName = ""
	}
}

// ToggleTheme flips and persists the theme. A failed write keeps the new
// theme for this session.
func (m *CatalogModel) ToggleTheme() error {
	m.Theme = state.ToggleTheme(m.Theme)
	design.ApplyTheme(m.Theme)
	m.RefreshDetail()
	return m.ThemeStore.SetTheme(m.Theme)
}

// DetailWidth is the wrap width of the detail pane.
func (m *CatalogModel) DetailWidth() int {
	w := m.Width/2 - 4
	if w < 20 {
		w = 20
	}
	return w
}

// RefreshDetail renders the selected command as markdown.
func (m *CatalogModel) RefreshDetail() {
	cmd, ok := m.SelectedCommand()
	if !ok || !m.ShowDetail {
		m.Detail = ""
		return
	}
	md := CommandMarkdown(cmd)

	width := m.DetailWidth()
	if m.Renderer == nil || m.rendererW != width || m.rendererT != m.Theme {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(design.MarkdownStyle(m.Theme)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Debug("Catalog", "Markdown renderer unavailable: %v", err)
			m.Renderer = nil
			m.Detail = md
			return
		}
		m.Renderer, m.rendererW, m.rendererT = r, width, m.Theme
	}

	out, err := m.Renderer.Render(md)
	if err != nil {
		m.Detail = md
		return
	}
	m.Detail = out
}
