package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/catalog"
	"botdash/internal/config"
	"botdash/internal/dashboard"
	"botdash/internal/dashboard/dashboardtest"
	"botdash/internal/state"
	"botdash/internal/tui/components"
	"botdash/internal/tui/model"
)

func TestRenderCounters(t *testing.T) {
	out := RenderCounters(catalog.Counters{Total: 12, Categories: 4, Results: 3})
	assert.Contains(t, out, "12 Total Commands")
	assert.Contains(t, out, "4 Categories")
	assert.Contains(t, out, "3 Search Results")
}

func TestRenderCategoryTabs(t *testing.T) {
	out := RenderCategoryTabs([]catalog.CategoryOption{
		{Key: catalog.AllCategories, Name: "All"},
		{Key: "fun", Name: "Fun & Games"},
		{Key: "misc"},
	}, 1, 80)
	assert.Contains(t, out, "All")
	assert.Contains(t, out, "Fun & Games")
	assert.Contains(t, out, "misc")
}

func TestRenderCard(t *testing.T) {
	cmd := catalog.Command{
		Name:         "kick",
		Description:  "Kick a member",
		Usage:        "!kick <member>",
		Examples:     []string{"!kick @spam"},
		Permissions:  []string{"Kick Members"},
		Category:     "mod",
		CategoryName: "Moderation",
	}

	out := RenderCard(cmd, false, false, 60)
	assert.Contains(t, out, "kick")
	assert.Contains(t, out, "Moderation")
	assert.Contains(t, out, "!kick <member>")
	assert.Contains(t, out, "Kick Members")
	assert.Contains(t, out, CopyLabel)
	assert.NotContains(t, out, CopiedLabel)

	assert.Contains(t, RenderCard(cmd, true, true, 60), CopiedLabel)
}

func TestRenderCards_PagesToSelection(t *testing.T) {
	cmds := []catalog.Command{{Name: "alpha"}, {Name: "bravo"}, {Name: "charlie"}}
	out := RenderCards(cmds, 2, "", 40, cardHeight)
	assert.Contains(t, out, "charlie")
	assert.NotContains(t, out, "alpha")
}

func TestRenderAlert(t *testing.T) {
	assert.Empty(t, RenderAlert(dashboard.Alert{}))
	assert.Contains(t, RenderAlert(dashboard.Alert{Kind: dashboard.AlertSuccess, Text: "Saved"}), "✓ Saved")
	assert.Contains(t, RenderAlert(dashboard.Alert{Kind: dashboard.AlertError, Text: "Nope"}), "✗ Nope")
}

func TestAlertPanelType(t *testing.T) {
	tests := []struct {
		kind dashboard.AlertKind
		want components.PanelType
	}{
		{dashboard.AlertNone, components.PanelTypeDefault},
		{dashboard.AlertInfo, components.PanelTypeInfo},
		{dashboard.AlertSuccess, components.PanelTypeSuccess},
		{dashboard.AlertError, components.PanelTypeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlertPanelType(tt.kind), "kind %d", tt.kind)
	}
}

func TestRenderDashboard_CheckingLoginShowsHeader(t *testing.T) {
	m := model.NewDashboardModel(model.DashboardConfig{
		Backend:    dashboardtest.New(),
		Strings:    dashboard.StringsFor(config.LocaleEnglish),
		ThemeStore: state.NewMemoryThemeStore(state.ThemeLight),
	})
	m.Width, m.Height = 80, 24
	_ = m.Retry()
	require.Equal(t, dashboard.PhaseAuthenticating, m.Ctrl.Phase())

	out := RenderDashboard(m)
	assert.Contains(t, out, "Bot Dashboard")
	assert.Contains(t, out, CheckingLoginMessage)
}

func TestRenderLogin(t *testing.T) {
	out := RenderLogin("http://bot.test/auth/login", false, 80, 0)
	assert.Contains(t, out, LoginTitle)
	assert.Contains(t, out, "http://bot.test/auth/login")
	assert.Contains(t, out, "No session cookie is configured.")

	assert.Contains(t, RenderLogin("http://x/auth/login", true, 80, 20), "rejected or has expired")
}

func TestRenderVolume(t *testing.T) {
	assert.Contains(t, RenderVolume(0, 40), "  0%")
	assert.Contains(t, RenderVolume(100, 40), "100%")
	assert.Equal(t, 30, strings.Count(RenderVolume(100, 80), "█"))
}

func TestRenderOverview(t *testing.T) {
	text := dashboard.StringsFor(config.LocaleIndonesian)

	t.Run("before first fetch", func(t *testing.T) {
		out := RenderOverview(dashboard.State{}, text, 0, 60)
		assert.Contains(t, out, "Servers -")
		assert.Contains(t, out, text.Loading)
	})

	t.Run("no guilds", func(t *testing.T) {
		st := dashboard.State{Guilds: dashboard.GuildsPanel{Fetched: true}}
		assert.Contains(t, RenderOverview(st, text, 0, 60), "Tidak ada server yang tersedia")
	})

	t.Run("guild failure keeps status", func(t *testing.T) {
		st := dashboard.State{
			Status: dashboard.StatusPanel{Fetched: true, Guilds: 3, Users: 9, Status: "Online", Uptime: "2h"},
			Guilds: dashboard.GuildsPanel{Err: errors.New("500")},
		}
		out := RenderOverview(st, text, 0, 60)
		assert.Contains(t, out, "Servers 3")
		assert.Contains(t, out, "Uptime 2h")
		assert.Contains(t, out, text.ServersError)
	})

	t.Run("lists guilds", func(t *testing.T) {
		st := dashboard.State{Guilds: dashboard.GuildsPanel{Fetched: true, Items: []dashboard.GuildItem{
			{ID: "1", Name: "Home", IconURL: dashboard.DefaultGuildIcon, Members: "10 members"},
		}}}
		out := RenderOverview(st, text, 0, 60)
		assert.Contains(t, out, "Home")
		assert.Contains(t, out, "10 members")
		assert.Contains(t, out, text.Manage)
	})
}

func TestRenderMusic_Placeholders(t *testing.T) {
	text := dashboard.StringsFor(config.LocaleEnglish)
	st := dashboard.State{Music: dashboard.MusicPanel{Volume: dashboard.DefaultVolume}}

	out := RenderMusic(st, text, 0, 60)
	assert.Contains(t, out, text.SelectServerPlaceholder)
	assert.Contains(t, out, text.NoSongPlaying)
	assert.Contains(t, out, " 50%")
}

func TestRenderTempVoice_MarksSelection(t *testing.T) {
	text := dashboard.StringsFor(config.LocaleEnglish)
	st := dashboard.State{TempVoice: dashboard.TempVoicePanel{
		Options:       []dashboard.GuildOption{{ID: "1", Name: "Home"}, {ID: "2", Name: "Lab"}},
		SelectedGuild: "2",
	}}
	out := RenderTempVoice(st, text, 0, 60)
	assert.Contains(t, out, "○ Home")
	assert.Contains(t, out, "● Lab")
}

func TestPrepareLogContent(t *testing.T) {
	out := PrepareLogContent([]string{"a [ERROR] x", "b [INFO] y"})
	assert.Contains(t, out, "a [ERROR] x")
	assert.Contains(t, out, "b [INFO] y")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLogViewportSize_HasMinimum(t *testing.T) {
	w, h := LogViewportSize(0, 0)
	assert.Equal(t, 10, w)
	assert.Equal(t, 3, h)
}
