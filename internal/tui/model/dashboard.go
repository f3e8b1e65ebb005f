package model

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"botdash/internal/dashboard"
	"botdash/internal/state"
	"botdash/internal/tui/design"
	"botdash/pkg/logging"
)

// DashMode represents the current mode of the dashboard
type DashMode int

const (
	DashModeMain DashMode = iota
	DashModeForm
	DashModeHelpOverlay
	DashModeLogOverlay
)

// Form field indexes of the custom command form.
const (
	FieldName = iota
	FieldDescription
	FieldResponse
	fieldCount
)

// OutcomeMsg carries a finished dashboard task back to the UI loop.
type OutcomeMsg struct {
	Outcome dashboard.Outcome
}

// DashboardConfig is what the command builds the dashboard from.
type DashboardConfig struct {
	Backend    dashboard.Backend
	Strings    dashboard.Strings
	BackendURL string
	HasSession bool
	Locale     string
	ThemeStore state.ThemeStore
	DebugMode  bool
	LogChannel <-chan logging.LogEntry
	Clipboard  func(string) error
}

// DashboardModel is the state of the dashboard program. The controller
// holds the domain state; this holds what only the terminal needs.
type DashboardModel struct {
	Width  int
	Height int

	Ctrl *dashboard.Controller
	Text dashboard.Strings

	// AtLogin is set when the controller sends the user to login.
	AtLogin  bool
	LoginURL string

	Mode      DashMode
	Cursor    int
	Form      []textinput.Model
	FormFocus int

	BackendURL string
	HasSession bool
	Locale     string
	Theme      string
	ThemeStore state.ThemeStore
	Clipboard  func(string) error

	Keys        DashboardKeyMap
	Help        help.Model
	Spinner     spinner.Model
	StatusBar   StatusBar
	DebugMode   bool
	ActivityLog ActivityLog
	LogViewport viewport.Model
	LogChannel  <-chan logging.LogEntry
}

// NewDashboardModel builds the dashboard and its controller.
func NewDashboardModel(cfg DashboardConfig) *DashboardModel {
	store := cfg.ThemeStore
	if store == nil {
		store = state.NewMemoryThemeStore(state.DefaultTheme)
	}
	theme, err := store.Theme()
	if err != nil {
		logging.Warn("Dashboard", "Could not read theme preference: %v", err)
		theme = state.DefaultTheme
	}
	design.ApplyTheme(theme)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = design.TextInfoStyle

	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := &DashboardModel{
		Text:        cfg.Strings,
		Form:        newCommandForm(),
		BackendURL:  cfg.BackendURL,
		HasSession:  cfg.HasSession,
		Locale:      cfg.Locale,
		Theme:       theme,
		ThemeStore:  store,
		Clipboard:   copyFn,
		Keys:        DefaultDashboardKeyMap(),
		Help:        help.New(),
		Spinner:     s,
		DebugMode:   cfg.DebugMode,
		LogViewport: viewport.New(0, 0),
		LogChannel:  cfg.LogChannel,
	}
	m.Ctrl = dashboard.NewController(cfg.Backend, m, cfg.Strings)
	return m
}

func newCommandForm() []textinput.Model {
	form := make([]textinput.Model, fieldCount)
	placeholders := []string{"name", "description (optional)", "response"}
	limits := []int{32, 100, 2000}
	for i := range form {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		form[i] = ti
	}
	return form
}

// ToLogin implements dashboard.Navigator by switching to the login screen.
func (m *DashboardModel) ToLogin(url string) {
	m.AtLogin = true
	m.LoginURL = url
	m.Mode = DashModeMain
	m.Cursor = 0
	logging.Info("Dashboard", "Login required: %s", url)
}

// Init starts the auth check, the spinner and the log listener.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.Retry(), m.Spinner.Tick, ListenForLogEntriesCmd(m.LogChannel))
}

// Retry leaves the login screen and checks auth again.
func (m *DashboardModel) Retry() tea.Cmd {
	m.AtLogin = false
	return TaskCmds(m.Ctrl.CheckAuth())
}

// TaskCmds turns dashboard tasks into commands for the program loop.
func TaskCmds(tasks []dashboard.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, task := range tasks {
		task := task
		cmds = append(cmds, func() tea.Msg {
			return OutcomeMsg{Outcome: task(context.Background())}
		})
	}
	return tea.Batch(cmds...)
}

// ApplyOutcome applies a finished task and schedules its follow-ups.
func (m *DashboardModel) ApplyOutcome(msg OutcomeMsg) tea.Cmd {
	if msg.Outcome == nil {
		return nil
	}
	return TaskCmds(msg.Outcome.Apply(m.Ctrl))
}

// ListLen is the number of selectable rows in the active section.
func (m *DashboardModel) ListLen() int {
	st := m.Ctrl.State()
	switch st.Active {
	case dashboard.SectionOverview:
		return len(st.Guilds.Items)
	case dashboard.SectionMusic:
		return len(st.Music.Options)
	case dashboard.SectionTempVoice:
		return len(st.TempVoice.Options)
	case dashboard.SectionCustom:
		return len(st.Custom.Items)
	default:
		return 0
	}
}

// MoveCursor moves the row cursor, clamped to the active list.
func (m *DashboardModel) MoveCursor(delta int) {
	n := m.ListLen()
	m.Cursor += delta
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// SwitchSection activates the section delta steps away in navigation order.
func (m *DashboardModel) SwitchSection(delta int) tea.Cmd {
	current := 0
	for i, s := range dashboard.Sections {
		if s == m.Ctrl.Active() {
			current = i
		}
	}
	n := len(dashboard.Sections)
	next := dashboard.Sections[((current+delta)%n+n)%n]
	tasks, err := m.Ctrl.SwitchSection(string(next))
	if err != nil {
		logging.Error("Dashboard", err, "Switch section")
		return nil
	}
	m.Cursor = 0
	return TaskCmds(tasks)
}

// OpenForm focuses the first field of the custom command form.
func (m *DashboardModel) OpenForm() tea.Cmd {
	m.Mode = DashModeForm
	m.FormFocus = FieldName
	return m.focusField()
}

// CloseForm leaves form mode, keeping what was typed.
func (m *DashboardModel) CloseForm() {
	m.Mode = DashModeMain
	for i := range m.Form {
		m.Form[i].Blur()
	}
	m.Ctrl.UpdateForm(m.FormValues())
}

// NextField cycles focus through the form fields.
func (m *DashboardModel) NextField() tea.Cmd {
	m.FormFocus = (m.FormFocus + 1) % len(m.Form)
	return m.focusField()
}

func (m *DashboardModel) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.Form {
		if i == m.FormFocus {
			cmd = m.Form[i].Focus()
		} else {
			m.Form[i].Blur()
		}
	}
	return cmd
}

// FormValues reads the form fields.
func (m *DashboardModel) FormValues() dashboard.CustomCommandForm {
	return dashboard.CustomCommandForm{
		Name:        m.Form[FieldName].Value(),
		Description: m.Form[FieldDescription].Value(),
		Response:    m.Form[FieldResponse].Value(),
	}
}

// SyncForm writes the controller's form back into the fields, which clears
// them after a successful create.
func (m *DashboardModel) SyncForm() {
	f := m.Ctrl.State().Custom.Form
	m.Form[FieldName].SetValue(f.Name)
	m.Form[FieldDescription].SetValue(f.Description)
	m.Form[FieldResponse].SetValue(f.Response)
}

// ToggleTheme flips and persists the theme.
func (m *DashboardModel) ToggleTheme() error {
	m.Theme = state.ToggleTheme(m.Theme)
	design.ApplyTheme(m.Theme)
	return m.ThemeStore.SetTheme(m.Theme)
}
