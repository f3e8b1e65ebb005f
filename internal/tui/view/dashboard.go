package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botdash/internal/dashboard"
	"botdash/internal/tui/components"
	"botdash/internal/tui/design"
	"botdash/internal/tui/model"
	"botdash/internal/tui/utils"
)

// Dashboard screen texts that do not depend on backend data.
const (
	CheckingLoginMessage = "Checking login..."
	LoginTitle           = "Login required"
	ModerationInfo       = "Moderation is configured with the bot's commands inside Discord."
)

// RenderDashboard draws the dashboard program.
func RenderDashboard(m *model.DashboardModel) string {
	width := m.Width
	if width <= 0 {
		width = defaultViewWidth
	}

	switch m.Mode {
	case model.DashModeHelpOverlay:
		return renderHelpOverlay(m.Help.FullHelpView(m.Keys.FullHelp()), width, m.Height)
	case model.DashModeLogOverlay:
		return renderLogOverlay(m.LogViewport.View(), width)
	}

	st := m.Ctrl.State()
	if m.AtLogin {
		login := RenderLogin(st.LoginURL, m.HasSession, width, m.Height-1)
		return lipgloss.JoinVertical(lipgloss.Left, login, renderStatusLine(m.StatusBar, width))
	}
	if st.Phase != dashboard.PhaseAuthenticated {
		header := components.NewHeader("Bot Dashboard").
			WithSpinner(m.Spinner.View()).
			WithWidth(width).
			Render()
		height := m.Height - lipgloss.Height(header)
		if height < 0 {
			height = 0
		}
		msg := messageRegion(CheckingLoginMessage, design.TextInfoStyle, width, height)
		return lipgloss.JoinVertical(lipgloss.Left, header, msg)
	}

	right := ""
	if st.Session != nil {
		right = "👤 " + st.Session.Username
	}
	header := components.NewHeader("Bot Dashboard").
		WithSubtitle(m.Text.Title(st.Active)).
		WithRightContent(right).
		WithWidth(width).
		Render()

	bar := components.NewStatusBar(width).
		WithLeftText(m.BackendURL).
		WithRightText(m.Help.ShortHelpView(m.Keys.ShortHelp()))
	if m.StatusBar.Message != "" {
		bar.WithMessage(m.StatusBar.Message, m.StatusBar.Type)
	}
	status := bar.Render()

	bodyHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < design.MinPanelHeight {
		bodyHeight = design.MinPanelHeight
	}

	nav := RenderNav(st.Active, m.Text, bodyHeight)
	contentWidth := width - lipgloss.Width(nav)
	content := components.NewPanel(m.Text.Title(st.Active)).
		WithIcon(sectionIcons[st.Active]).
		WithType(AlertPanelType(st.Alert.Kind)).
		WithContent(RenderSection(m, st, contentWidth-4)).
		WithDimensions(contentWidth, bodyHeight).
		SetFocused(true).
		Render()

	body := lipgloss.JoinHorizontal(lipgloss.Top, nav, content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// RenderLogin draws the login screen shown when there is no valid session.
func RenderLogin(loginURL string, hasSession bool, width, height int) string {
	lines := []string{
		design.TitleStyle.Render(LoginTitle),
		"",
		"Open this address in a browser and log in with Discord:",
		design.TextInfoStyle.Render(loginURL),
		"",
	}
	if hasSession {
		lines = append(lines, design.TextWarningStyle.Render("The configured session cookie was rejected or has expired."))
	} else {
		lines = append(lines, design.TextSecondaryStyle.Render("No session cookie is configured."))
	}
	lines = append(lines,
		design.TextSecondaryStyle.Render("Copy the session cookie into BOTDASH_SESSION_COOKIE, then retry."),
		"",
		design.DimStyle.Render("y copy url · r retry · q quit"),
	)

	box := design.CenteredOverlayContainerStyle.Render(strings.Join(lines, "\n"))
	if height <= 0 {
		return design.CenterHorizontal(width, box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderStatusLine(bar model.StatusBar, width int) string {
	if bar.Message == "" {
		return ""
	}
	return components.NewStatusBar(width).WithMessage(bar.Message, bar.Type).Render()
}

// RenderNav draws the section sidebar with the active section highlighted.
func RenderNav(active dashboard.Section, text dashboard.Strings, height int) string {
	items := make([]string, 0, len(dashboard.Sections))
	for i, s := range dashboard.Sections {
		label := fmt.Sprintf("%d %s", i+1, text.Title(s))
		style := design.NavItemStyle
		if s == active {
			style = design.NavItemActiveStyle
		}
		items = append(items, style.Width(design.SidebarWidth-2).Render(label))
	}
	return lipgloss.NewStyle().
		Width(design.SidebarWidth).
		Height(height).
		Render(strings.Join(items, "\n"))
}

// RenderSection draws the body of the active section.
func RenderSection(m *model.DashboardModel, st dashboard.State, width int) string {
	var body string
	switch st.Active {
	case dashboard.SectionOverview:
		body = RenderOverview(st, m.Text, m.Cursor, width)
	case dashboard.SectionMusic:
		body = RenderMusic(st, m.Text, m.Cursor, width)
	case dashboard.SectionModeration:
		body = design.TextSecondaryStyle.Render(ModerationInfo)
	case dashboard.SectionTempVoice:
		body = RenderTempVoice(st, m.Text, m.Cursor, width)
	case dashboard.SectionCustom:
		body = RenderCustom(st, m, width)
	case dashboard.SectionSettings:
		body = RenderSettings(st, m)
	}
	if alert := RenderAlert(st.Alert); alert != "" {
		body = alert + "\n\n" + body
	}
	return body
}

var sectionIcons = map[dashboard.Section]string{
	dashboard.SectionOverview:   "◆",
	dashboard.SectionMusic:      "♪",
	dashboard.SectionModeration: "⚑",
	dashboard.SectionTempVoice:  "◎",
	dashboard.SectionCustom:     "✎",
	dashboard.SectionSettings:   "⚙",
}

// AlertPanelType is the section panel's border style while an alert of kind
// is shown.
func AlertPanelType(kind dashboard.AlertKind) components.PanelType {
	switch kind {
	case dashboard.AlertSuccess:
		return components.PanelTypeSuccess
	case dashboard.AlertError:
		return components.PanelTypeError
	case dashboard.AlertInfo:
		return components.PanelTypeInfo
	default:
		return components.PanelTypeDefault
	}
}

// RenderAlert draws the inline alert, or nothing.
func RenderAlert(a dashboard.Alert) string {
	if a.Kind == dashboard.AlertNone || a.Text == "" {
		return ""
	}
	style := design.TextInfoStyle
	icon := "ℹ"
	switch a.Kind {
	case dashboard.AlertSuccess:
		style, icon = design.TextSuccessStyle, "✓"
	case dashboard.AlertError:
		style, icon = design.TextErrorStyle, "✗"
	}
	return style.Render(icon+" "+a.Text) + design.DimStyle.Render("  (esc)")
}

// RenderOverview draws the bot status and the server list.
func RenderOverview(st dashboard.State, text dashboard.Strings, cursor, width int) string {
	var b strings.Builder

	s := st.Status
	value := func(v string) string {
		if !s.Fetched {
			return "-"
		}
		return v
	}
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s",
		design.TextSecondaryStyle.Render("Servers"), design.CounterValueStyle.Render(value(fmt.Sprint(s.Guilds))),
		design.TextSecondaryStyle.Render("Users"), design.CounterValueStyle.Render(value(fmt.Sprint(s.Users))),
		design.TextSecondaryStyle.Render("Status"), design.GetStatusStyle(s.Status).Render(value(s.Status)))
	if s.Uptime != "" {
		fmt.Fprintf(&b, "   %s %s", design.TextSecondaryStyle.Render("Uptime"), s.Uptime)
	}
	if s.Err != nil {
		b.WriteString("  " + design.TextWarningStyle.Render("(stale)"))
	}
	b.WriteString("\n\n")

	g := st.Guilds
	switch {
	case g.Err != nil:
		b.WriteString(design.TextErrorStyle.Render(text.ServersError))
	case !g.Fetched:
		b.WriteString(design.TextSecondaryStyle.Render(text.Loading))
	case len(g.Items) == 0:
		b.WriteString(design.TextSecondaryStyle.Render(text.NoServers))
	default:
		for i, item := range g.Items {
			b.WriteString(RenderGuild(item, text, i == cursor, width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderGuild draws one server entry with its Manage action.
func RenderGuild(g dashboard.GuildItem, text dashboard.Strings, selected bool, width int) string {
	marker := "  "
	style := design.TextStyle
	if selected {
		marker = "▸ "
		style = design.ListItemSelectedStyle.UnsetPaddingLeft()
	}
	button := design.ButtonSecondaryStyle.Render(text.Manage)
	if selected {
		button = design.ButtonStyle.Render(text.Manage)
	}
	name := utils.Ellipsize(g.Name, width-lipgloss.Width(button)-lipgloss.Width(g.Members)-8)
	first := spread(marker+style.Render(name)+"  "+design.TextSecondaryStyle.Render(g.Members), button, width)
	icon := "    " + design.DimStyle.Render(utils.Ellipsize(g.IconURL, width-4))
	return first + "\n" + icon
}

func renderGuildSelector(options []dashboard.GuildOption, selectedID, placeholder string, cursor, width int) string {
	if len(options) == 0 {
		return design.TextSecondaryStyle.Render(placeholder)
	}
	lines := []string{design.TextSecondaryStyle.Render(placeholder)}
	for i, opt := range options {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		radio := "○"
		style := design.TextStyle
		if opt.ID == selectedID {
			radio = "●"
			style = design.TextInfoStyle
		}
		lines = append(lines, marker+radio+" "+style.Render(utils.Ellipsize(opt.Name, width-6)))
	}
	return strings.Join(lines, "\n")
}

// RenderMusic draws the guild selector, the current track and the controls.
func RenderMusic(st dashboard.State, text dashboard.Strings, cursor, width int) string {
	mu := st.Music
	lines := []string{renderGuildSelector(mu.Options, mu.SelectedGuild, text.SelectServerPlaceholder, cursor, width), ""}

	np := mu.NowPlaying
	if !mu.Fetched {
		np = dashboard.NowPlaying{Title: text.NoSongPlaying, Artist: text.NoArtist}
	}
	icon := "⏹"
	if np.Playing {
		icon = "♪"
	}
	lines = append(lines,
		design.TitleStyle.Render(icon+" "+utils.Ellipsize(np.Title, width-2)),
		design.TextSecondaryStyle.Render(utils.Ellipsize(np.Artist, width)),
	)
	if np.Thumbnail != "" {
		lines = append(lines, design.DimStyle.Render(utils.Ellipsize(np.Thumbnail, width)))
	}
	lines = append(lines, "", RenderVolume(mu.Volume, width), "",
		design.DimStyle.Render("p pause · u resume · s skip · x stop · +/- volume"))
	return strings.Join(lines, "\n")
}

// RenderVolume draws the volume slider.
func RenderVolume(volume, width int) string {
	barWidth := width - 14
	if barWidth > 30 {
		barWidth = 30
	}
	if barWidth < 5 {
		barWidth = 5
	}
	filled := volume * barWidth / dashboard.MaxVolume
	bar := design.TextInfoStyle.Render(strings.Repeat("█", filled)) + design.DimStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("🔊 %s %3d%%", bar, volume)
}

// RenderTempVoice draws the temp voice guild selector.
func RenderTempVoice(st dashboard.State, text dashboard.Strings, cursor, width int) string {
	return renderGuildSelector(st.TempVoice.Options, st.TempVoice.SelectedGuild, text.SelectServerPlaceholder, cursor, width)
}

// RenderCustom draws the custom command list and the create form.
func RenderCustom(st dashboard.State, m *model.DashboardModel, width int) string {
	c := st.Custom
	var lines []string
	switch {
	case c.Err != nil:
		lines = append(lines, design.TextErrorStyle.Render(m.Text.CustomCommandsError))
	case !c.Fetched:
		lines = append(lines, design.TextSecondaryStyle.Render(m.Text.Loading))
	case len(c.Items) == 0:
		lines = append(lines, design.TextSecondaryStyle.Render(m.Text.NoCustomCommands))
	default:
		for i, item := range c.Items {
			marker := "  "
			if i == m.Cursor {
				marker = "▸ "
			}
			line := marker + design.TitleStyle.Render(item.Name)
			if item.Description != "" {
				line += "  " + design.TextSecondaryStyle.Render(item.Description)
			}
			lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
		}
	}

	lines = append(lines, "")
	for i, field := range m.Form {
		style := design.InputStyle
		if m.Mode == model.DashModeForm && i == m.FormFocus {
			style = design.InputFocusedStyle
		}
		w := width - style.GetHorizontalFrameSize()
		if w < 10 {
			w = 10
		}
		lines = append(lines, style.Width(w).Render(field.View()))
	}
	hint := "n new command"
	if m.Mode == model.DashModeForm {
		hint = "tab next field · ctrl+s create · esc close"
	}
	lines = append(lines, design.DimStyle.Render(hint))
	return strings.Join(lines, "\n")
}

// RenderSettings draws the local settings and the session summary.
func RenderSettings(st dashboard.State, m *model.DashboardModel) string {
	row := func(label, value string) string {
		return design.TextSecondaryStyle.Render(fmt.Sprintf("%-10s", label)) + " " + value
	}
	session := "not configured"
	if m.HasSession {
		session = "configured"
	}
	lines := []string{
		row("Theme", m.Theme+design.DimStyle.Render("  (ctrl+t)")),
		row("Locale", m.Locale),
		row("Backend", m.BackendURL),
		row("Session", session),
	}
	if st.Session != nil {
		lines = append(lines,
			"",
			row("User", st.Session.Username),
			row("User ID", st.Session.ID),
			row("Avatar", st.Session.AvatarURL),
		)
	}
	return strings.Join(lines, "\n")
}
