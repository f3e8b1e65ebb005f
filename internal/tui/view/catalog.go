package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botdash/internal/catalog"
	"botdash/internal/state"
	"botdash/internal/tui/components"
	"botdash/internal/tui/design"
	"botdash/internal/tui/model"
	"botdash/internal/tui/utils"
)

// Results region messages. Each state has its own text so a reader can tell
// an empty search from a pending or failed load.
const (
	LoadingMessage      = "Loading commands..."
	LoadErrorMessage    = "Error loading commands. Please refresh the page."
	EmptyResultsMessage = "No commands found matching your search."
	SearchHint          = "Press Ctrl+K to search"
	CopyLabel           = "📋 Copy"
	CopiedLabel         = "✓ Copied!"
)

const (
	cardHeight       = 7
	minDetailWidth   = 100
	defaultViewWidth = 80
)

// RenderCatalog draws the command catalog browser.
func RenderCatalog(m *model.CatalogModel) string {
	width := m.Width
	if width <= 0 {
		width = defaultViewWidth
	}

	switch m.Mode {
	case model.CatalogModeHelpOverlay:
		return renderHelpOverlay(m.Help.FullHelpView(m.Keys.FullHelp()), width, m.Height)
	case model.CatalogModeLogOverlay:
		return renderLogOverlay(m.LogViewport.View(), width)
	}

	header := components.NewHeader("🤖 Bot Commands").
		WithSubtitle("command reference").
		WithRightContent(themeIndicator(m.Theme)).
		WithWidth(width).
		Render()

	search := renderSearch(m, width)
	categories := RenderCategoryTabs(m.Categories, m.CategoryIndex, width)
	counters := RenderCounters(m.Counters())
	status := renderCatalogStatus(m, width)

	used := lipgloss.Height(header) + lipgloss.Height(search) + lipgloss.Height(categories) +
		lipgloss.Height(counters) + lipgloss.Height(status)
	bodyHeight := m.Height - used
	if bodyHeight < cardHeight {
		bodyHeight = cardHeight
	}

	body := RenderResults(m, width, bodyHeight)
	return lipgloss.JoinVertical(lipgloss.Left, header, search, categories, counters, body, status)
}

func themeIndicator(theme string) string {
	if state.NormalizeTheme(theme) == state.ThemeDark {
		return "☾ dark"
	}
	return "☀ light"
}

func renderSearch(m *model.CatalogModel, width int) string {
	style := design.InputStyle
	if m.Search.Focused() {
		style = design.InputFocusedStyle
	}
	box := style.Width(width - style.GetHorizontalBorderSize()).Render(m.Search.View())
	hint := design.DimStyle.Render(SearchHint)
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

// RenderCategoryTabs draws the category selector with the active one highlighted.
func RenderCategoryTabs(options []catalog.CategoryOption, active, width int) string {
	parts := make([]string, 0, len(options))
	for i, opt := range options {
		label := opt.Name
		if label == "" {
			label = opt.Key
		}
		if i == active {
			parts = append(parts, design.NavItemActiveStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, design.NavItemStyle.Render(" "+label+" "))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, " "))
}

// RenderCounters draws the total, category and result counts.
func RenderCounters(c catalog.Counters) string {
	item := func(value int, label string) string {
		return design.CounterValueStyle.Render(fmt.Sprintf("%d", value)) + " " + design.TextSecondaryStyle.Render(label)
	}
	return strings.Join([]string{
		item(c.Total, "Total Commands"),
		item(c.Categories, "Categories"),
		item(c.Results, "Search Results"),
	}, "   ")
}

// RenderResults draws the results region: a state message or the cards,
// with the detail pane beside them on wide terminals.
func RenderResults(m *model.CatalogModel, width, height int) string {
	switch m.Load {
	case model.LoadPending:
		return messageRegion(m.Spinner.View()+" "+LoadingMessage, design.TextInfoStyle, width, height)
	case model.LoadFailed:
		return messageRegion(LoadErrorMessage, design.TextErrorStyle, width, height)
	}
	if len(m.Visible) == 0 {
		return messageRegion(EmptyResultsMessage, design.TextSecondaryStyle, width, height)
	}

	cardsWidth := width
	showDetail := m.ShowDetail && m.Detail != "" && width >= minDetailWidth
	if showDetail {
		cardsWidth = width / 2
	}
	cards := RenderCards(m.Visible, m.Selected, m.CopiedName, cardsWidth, height)
	if !showDetail {
		return cards
	}

	detail := components.NewPanel("Details").
		WithContent(strings.TrimRight(m.Detail, "\n")).
		WithDimensions(width-cardsWidth, height).
		Render()
	return lipgloss.JoinHorizontal(lipgloss.Top, cards, detail)
}

func messageRegion(msg string, style lipgloss.Style, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, design.SpaceSM).
		Render(style.Render(msg))
}

// RenderCards draws one card per command in catalog order, showing the page
// that contains the selected card.
func RenderCards(cmds []catalog.Command, selected int, copiedName string, width, height int) string {
	perPage := height / cardHeight
	if perPage < 1 {
		perPage = 1
	}
	start := (selected / perPage) * perPage
	end := start + perPage
	if end > len(cmds) {
		end = len(cmds)
	}

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, RenderCard(cmds[i], i == selected, cmds[i].Name == copiedName, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderCard draws a single command card.
func RenderCard(cmd catalog.Command, selected, copied bool, width int) string {
	style := design.CardStyle
	if selected {
		style = design.CardSelectedStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	badgeText := cmd.CategoryName
	if badgeText == "" {
		badgeText = cmd.Category
	}
	badge := design.BadgeStyle.Render(badgeText)
	name := design.TitleStyle.Render(utils.Ellipsize(cmd.Name, inner-lipgloss.Width(badge)-1))
	title := spread(name, badge, inner)

	button := design.ButtonSecondaryStyle.Render(CopyLabel)
	if copied {
		button = design.ButtonSuccessStyle.Render(CopiedLabel)
	}
	usage := design.TextInfoStyle.Render(utils.Ellipsize(cmd.Usage, inner-lipgloss.Width(button)-1))

	lines := []string{
		title,
		design.TextSecondaryStyle.Render(utils.Ellipsize(cmd.Description, inner)),
		spread(usage, button, inner),
		utils.Ellipsize("Examples: "+strings.Join(cmd.Examples, ", "), inner),
		design.DimStyle.Render(utils.Ellipsize("🛡 "+strings.Join(cmd.Permissions, ", "), inner)),
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// spread puts left and right on one line, right-aligned when there is room.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderCatalogStatus(m *model.CatalogModel, width int) string {
	bar := components.NewStatusBar(width).
		WithLeftText(fmt.Sprintf("Source: %s", m.Source)).
		WithRightText(m.Help.ShortHelpView(m.Keys.ShortHelp()))
	if m.StatusBar.Message != "" {
		bar.WithMessage(m.StatusBar.Message, m.StatusBar.Type)
	}
	return bar.Render()
}
