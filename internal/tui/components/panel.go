package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botdash/internal/tui/design"
)

// PanelType defines the visual style of a panel
type PanelType int

const (
	PanelTypeDefault PanelType = iota
	PanelTypeSuccess
	PanelTypeError
	PanelTypeWarning
	PanelTypeInfo
)

// Panel represents a reusable panel component
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
	Type    PanelType
	Icon    string
}

// NewPanel creates a new panel with default settings
func NewPanel(title string) *Panel {
	return &Panel{
		Title:  title,
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
		Type:   PanelTypeDefault,
	}
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithDimensions sets the panel dimensions
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// WithType sets the panel type for styling
func (p *Panel) WithType(panelType PanelType) *Panel {
	p.Type = panelType
	return p
}

// WithIcon sets a custom icon for the panel
func (p *Panel) WithIcon(icon string) *Panel {
	p.Icon = icon
	return p
}

// SetFocused updates the focus state
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// Render returns the styled panel. Content that does not fit is cut, with
// the last visible line replaced by "...".
func (p *Panel) Render() string {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}

	style := p.getStyle()
	innerWidth := p.Width - style.GetHorizontalFrameSize()
	innerHeight := p.Height - style.GetVerticalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	var lines []string
	if p.Title != "" {
		lines = append(lines, p.renderTitle())
	}
	if p.Content != "" {
		contentLines := strings.Split(p.Content, "\n")
		available := innerHeight - len(lines)
		if available > 0 && len(contentLines) > available {
			contentLines = append(contentLines[:available-1], "...")
		}
		lines = append(lines, contentLines...)
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	body := lipgloss.NewStyle().MaxWidth(innerWidth).Render(strings.Join(lines, "\n"))
	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Height(innerHeight).
		Render(body)
}

func (p *Panel) getStyle() lipgloss.Style {
	base := design.PanelStyle
	if p.Focused {
		base = design.PanelFocusedStyle
	}

	switch p.Type {
	case PanelTypeSuccess:
		return base.BorderForeground(design.ColorSuccess)
	case PanelTypeError:
		return base.BorderForeground(design.ColorError)
	case PanelTypeWarning:
		return base.BorderForeground(design.ColorWarning)
	case PanelTypeInfo:
		return base.BorderForeground(design.ColorInfo)
	default:
		return base
	}
}

func (p *Panel) renderTitle() string {
	title := design.TitleStyle
	if p.Focused {
		title = title.Foreground(design.ColorPrimary)
	}
	if p.Icon == "" {
		return title.Render(p.Title)
	}
	return p.iconStyle().Render(p.Icon) + " " + title.Render(p.Title)
}

func (p *Panel) iconStyle() lipgloss.Style {
	switch p.Type {
	case PanelTypeSuccess:
		return design.TextSuccessStyle
	case PanelTypeError:
		return design.TextErrorStyle
	case PanelTypeWarning:
		return design.TextWarningStyle
	case PanelTypeInfo:
		return design.TextInfoStyle
	default:
		return design.TextSecondaryStyle
	}
}
