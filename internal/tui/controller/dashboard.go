package controller

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"botdash/internal/api"
	"botdash/internal/dashboard"
	"botdash/internal/tui/model"
	"botdash/internal/tui/view"
	"botdash/pkg/logging"
)

const (
	dashboardSubsystem = "Dashboard"
	volumeStep         = 5
)

// DashboardApp wraps the dashboard model to handle updates and views
type DashboardApp struct {
	model *model.DashboardModel
}

// NewDashboardApp creates a new app wrapper
func NewDashboardApp(m *model.DashboardModel) DashboardApp {
	return DashboardApp{model: m}
}

// Model exposes the wrapped state, mainly for tests.
func (a DashboardApp) Model() *model.DashboardModel {
	return a.model
}

// Init implements tea.Model
func (a DashboardApp) Init() tea.Cmd {
	return a.model.Init()
}

// View implements tea.Model
func (a DashboardApp) View() string {
	return view.RenderDashboard(a.model)
}

// Update implements tea.Model
func (a DashboardApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m := a.model

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.LogViewport.Width, m.LogViewport.Height = view.LogViewportSize(msg.Width, msg.Height)
		return a, nil

	case model.OutcomeMsg:
		cmd := m.ApplyOutcome(msg)
		if m.Mode != model.DashModeForm {
			m.SyncForm()
		}
		m.MoveCursor(0)
		return a, cmd

	case model.ClearStatusBarMsg:
		m.StatusBar.Clear()
		return a, nil

	case model.NewLogEntryMsg:
		m.ActivityLog.Add(msg.Entry, m.DebugMode)
		refreshLogViewport(&m.ActivityLog, &m.LogViewport)
		return a, model.ListenForLogEntriesCmd(m.LogChannel)

	case spinner.TickMsg:
		if m.Ctrl.Phase() != dashboard.PhaseAuthenticating {
			return a, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, handleDashboardKey(m, msg)
	}

	if m.Mode == model.DashModeForm {
		var cmd tea.Cmd
		m.Form[m.FormFocus], cmd = m.Form[m.FormFocus].Update(msg)
		return a, cmd
	}
	return a, nil
}

func handleDashboardKey(m *model.DashboardModel, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch m.Mode {
	case model.DashModeHelpOverlay:
		if key.Matches(msg, m.Keys.Help) || msg.Type == tea.KeyEsc {
			m.Mode = model.DashModeMain
		}
		return nil
	case model.DashModeLogOverlay:
		closed, cmd := handleLogOverlayKey(msg, m.Keys.ToggleLog, &m.ActivityLog, &m.LogViewport, &m.StatusBar)
		if closed {
			m.Mode = model.DashModeMain
		}
		return cmd
	case model.DashModeForm:
		return handleFormKey(m, msg)
	}

	// Keys available on every screen.
	switch {
	case key.Matches(msg, m.Keys.ToggleDark):
		return toggleTheme(m.ToggleTheme, &m.StatusBar, func() string { return m.Theme })
	case key.Matches(msg, m.Keys.ToggleLog):
		m.Mode = model.DashModeLogOverlay
		m.LogViewport.GotoBottom()
		return nil
	case key.Matches(msg, m.Keys.Help):
		m.Mode = model.DashModeHelpOverlay
		return nil
	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit
	}

	if m.AtLogin {
		return handleLoginKey(m, msg)
	}
	if m.Ctrl.Phase() != dashboard.PhaseAuthenticated {
		return nil
	}
	return handleMainKey(m, msg)
}

func handleLoginKey(m *model.DashboardModel, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Copy):
		if err := m.Clipboard(m.LoginURL); err != nil {
			logging.Error(dashboardSubsystem, err, "Failed to copy login url")
			return m.StatusBar.Set("Copy failed", model.StatusBarError, model.StatusMessageTTL)
		}
		return m.StatusBar.Set("Login URL copied", model.StatusBarSuccess, model.StatusMessageTTL)
	case key.Matches(msg, m.Keys.Refresh):
		return m.Retry()
	}
	return nil
}

func handleMainKey(m *model.DashboardModel, msg tea.KeyMsg) tea.Cmd {
	active := m.Ctrl.Active()

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(dashboard.Sections)) {
		tasks, err := m.Ctrl.SwitchSection(string(dashboard.Sections[s[0]-'1']))
		if err != nil {
			logging.Error(dashboardSubsystem, err, "Switch section")
			return nil
		}
		m.Cursor = 0
		return model.TaskCmds(tasks)
	}

	switch {
	case key.Matches(msg, m.Keys.Dismiss):
		m.Ctrl.DismissAlert()
		return nil
	case key.Matches(msg, m.Keys.NextSection):
		return m.SwitchSection(1)
	case key.Matches(msg, m.Keys.PrevSection):
		return m.SwitchSection(-1)
	case key.Matches(msg, m.Keys.Up):
		m.MoveCursor(-1)
		return nil
	case key.Matches(msg, m.Keys.Down):
		m.MoveCursor(1)
		return nil
	case key.Matches(msg, m.Keys.Refresh):
		tasks, err := m.Ctrl.Refresh(string(active))
		if err != nil {
			logging.Error(dashboardSubsystem, err, "Refresh section")
			return nil
		}
		return model.TaskCmds(tasks)
	case key.Matches(msg, m.Keys.Logout):
		return model.TaskCmds(m.Ctrl.Logout())
	case key.Matches(msg, m.Keys.Select):
		return selectRow(m, active)
	}

	switch active {
	case dashboard.SectionMusic:
		return handleMusicKey(m, msg)
	case dashboard.SectionCustom:
		if key.Matches(msg, m.Keys.NewCommand) {
			return m.OpenForm()
		}
	}
	return nil
}

func selectRow(m *model.DashboardModel, active dashboard.Section) tea.Cmd {
	st := m.Ctrl.State()
	switch active {
	case dashboard.SectionOverview:
		if m.Cursor < len(st.Guilds.Items) {
			g := st.Guilds.Items[m.Cursor]
			m.Ctrl.ManageGuild(g.ID)
			return m.StatusBar.Set("Selected "+g.Name, model.StatusBarInfo, model.StatusMessageTTL)
		}
	case dashboard.SectionMusic:
		if m.Cursor < len(st.Music.Options) {
			return model.TaskCmds(m.Ctrl.SelectMusicGuild(st.Music.Options[m.Cursor].ID))
		}
	case dashboard.SectionTempVoice:
		if m.Cursor < len(st.TempVoice.Options) {
			m.Ctrl.SelectTempVoiceGuild(st.TempVoice.Options[m.Cursor].ID)
		}
	case dashboard.SectionCustom:
		return m.OpenForm()
	}
	return nil
}

func handleMusicKey(m *model.DashboardModel, msg tea.KeyMsg) tea.Cmd {
	var action api.MusicAction
	switch {
	case key.Matches(msg, m.Keys.Pause):
		action = api.MusicPause
	case key.Matches(msg, m.Keys.Resume):
		action = api.MusicResume
	case key.Matches(msg, m.Keys.Skip):
		action = api.MusicSkip
	case key.Matches(msg, m.Keys.Stop):
		action = api.MusicStop
	case key.Matches(msg, m.Keys.VolumeUp):
		m.Ctrl.SetVolume(m.Ctrl.State().Music.Volume + volumeStep)
		return nil
	case key.Matches(msg, m.Keys.VolumeDown):
		m.Ctrl.SetVolume(m.Ctrl.State().Music.Volume - volumeStep)
		return nil
	default:
		return nil
	}

	tasks, err := m.Ctrl.MusicAction(action)
	if err != nil {
		logging.Debug(dashboardSubsystem, "Music %s not sent: %v", action, err)
		return nil
	}
	return model.TaskCmds(tasks)
}

func handleFormKey(m *model.DashboardModel, msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.CloseForm()
		return nil
	case key.Matches(msg, m.Keys.Submit):
		return submitForm(m)
	case msg.Type == tea.KeyEnter:
		if m.FormFocus == model.FieldResponse {
			return submitForm(m)
		}
		return m.NextField()
	case key.Matches(msg, m.Keys.NextField):
		return m.NextField()
	}

	var cmd tea.Cmd
	m.Form[m.FormFocus], cmd = m.Form[m.FormFocus].Update(msg)
	return cmd
}

func submitForm(m *model.DashboardModel) tea.Cmd {
	form := m.FormValues()
	m.CloseForm()
	tasks, err := m.Ctrl.CreateCustomCommand(form)
	if err != nil {
		logging.Debug(dashboardSubsystem, "Custom command not sent: %v", err)
		return nil
	}
	return model.TaskCmds(tasks)
}
