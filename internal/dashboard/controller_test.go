package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/api"
)

func newTestController(t *testing.T, b *fakeBackend) (*Controller, *fakeNavigator) {
	t.Helper()
	nav := &fakeNavigator{}
	return NewController(b, nav, StringsFor("en")), nav
}

func login(t *testing.T, c *Controller) {
	t.Helper()
	Run(context.Background(), c, c.CheckAuth()...)
	require.Equal(t, PhaseAuthenticated, c.Phase())
}

func TestCheckAuth_NotAuthenticatedRedirects(t *testing.T) {
	b := newFakeBackend()
	b.auth = api.AuthStatus{Authenticated: false}
	c, nav := newTestController(t, b)

	tasks := c.CheckAuth()
	assert.Equal(t, PhaseAuthenticating, c.Phase())
	Run(context.Background(), c, tasks...)

	assert.Equal(t, PhaseUnauthenticated, c.Phase())
	assert.Equal(t, []string{"http://bot.test/auth/login"}, nav.urls)
	assert.Equal(t, []string{"GET /auth/check"}, b.Calls(), "no further calls after a negative auth check")
	assert.Nil(t, c.State().Session)
}

func TestCheckAuth_FailuresRedirect(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *fakeBackend)
		calls []string
	}{
		{
			name:  "check fails",
			setup: func(b *fakeBackend) { b.authErr = errors.New("connection refused") },
			calls: []string{"GET /auth/check"},
		},
		{
			name: "user fails",
			setup: func(b *fakeBackend) {
				b.userErr = &api.StatusError{Method: "GET", Path: "/auth/user", StatusCode: 500}
			},
			calls: []string{"GET /auth/check", "GET /auth/user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			tt.setup(b)
			c, nav := newTestController(t, b)

			Run(context.Background(), c, c.CheckAuth()...)

			assert.Equal(t, PhaseUnauthenticated, c.Phase())
			assert.Len(t, nav.urls, 1)
			assert.Equal(t, tt.calls, b.Calls())
		})
	}
}

func TestCheckAuth_SuccessLoadsDashboard(t *testing.T) {
	b := newFakeBackend()
	c, nav := newTestController(t, b)

	login(t, c)

	assert.Empty(t, nav.urls)
	assert.Equal(t, []string{
		"GET /auth/check",
		"GET /auth/user",
		"GET /api/bot/status",
		"GET /api/user/guilds",
	}, b.Calls())

	st := c.State()
	require.NotNil(t, st.Session)
	assert.Equal(t, "ayu", st.Session.Username)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/42/abc.png", st.Session.AvatarURL)
	assert.Equal(t, StatusPanel{Fetched: true, Guilds: 2, Users: 30, Status: "Online"}, st.Status)
	require.Len(t, st.Guilds.Items, 2)
	assert.Equal(t, "10 members", st.Guilds.Items[0].Members)
	assert.Equal(t, DefaultGuildIcon, st.Guilds.Items[1].IconURL)
	assert.True(t, st.Loaded[SectionOverview])
}

func TestCheckAuth_LoadsSectionChosenBeforeLogin(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)

	tasks, err := c.SwitchSection("custom")
	require.NoError(t, err)
	assert.Empty(t, tasks, "nothing loads before the auth check")

	login(t, c)
	assert.Contains(t, b.Calls(), "GET /api/commands")
	assert.Equal(t, []CustomCommand{{Name: "hello", Description: "Says hi"}}, c.State().Custom.Items)
}

func TestSwitchSection(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)

	_, err := c.SwitchSection("billing")
	assert.True(t, errors.Is(err, ErrUnknownSection))
	assert.Equal(t, SectionOverview, c.Active())

	tasks, err := c.SwitchSection("custom")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, SectionCustom, c.Active())
	Run(context.Background(), c, tasks...)

	tasks, err = c.SwitchSection("custom")
	require.NoError(t, err)
	assert.Empty(t, tasks, "a loaded section is not fetched again")

	tasks, err = c.Refresh("custom")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestSwitchSection_LocalSections(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)
	before := len(b.Calls())

	for _, name := range []string{"moderation", "settings", "tempvoice", "music"} {
		tasks, err := c.SwitchSection(name)
		require.NoError(t, err)
		assert.Empty(t, tasks, name)
	}

	st := c.State()
	assert.Len(t, b.Calls(), before, "local sections make no calls")
	for _, s := range []Section{SectionModeration, SectionSettings, SectionTempVoice, SectionMusic} {
		assert.True(t, st.Loaded[s], s)
	}
	assert.Equal(t, []GuildOption{{ID: "1", Name: "Home"}, {ID: "2", Name: "Lab"}}, st.TempVoice.Options)
	assert.Equal(t, st.TempVoice.Options, st.Music.Options)

	c.SelectTempVoiceGuild("2")
	assert.Equal(t, "2", c.State().TempVoice.SelectedGuild)
}

func TestLoadDashboardData_GuildFailureIsIsolated(t *testing.T) {
	b := newFakeBackend()
	b.guildsErr = &api.StatusError{Method: "GET", Path: "/api/user/guilds", StatusCode: 502}
	c, _ := newTestController(t, b)
	login(t, c)

	st := c.State()
	assert.Equal(t, 2, st.Status.Guilds)
	assert.Equal(t, "Online", st.Status.Status)
	assert.NoError(t, st.Status.Err)
	assert.Error(t, st.Guilds.Err)
	assert.False(t, st.Guilds.Fetched)
}

func TestLoadDashboardData_StatusFailureKeepsLastKnown(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)

	b.statusErr = errors.New("timeout")
	b.guilds = []api.Guild{}
	tasks, err := c.Refresh("overview")
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	st := c.State()
	assert.Equal(t, "Online", st.Status.Status, "last-known status survives")
	assert.Error(t, st.Status.Err)
	assert.True(t, st.Guilds.Fetched)
	assert.Empty(t, st.Guilds.Items)
}

func TestStatusFallbacks(t *testing.T) {
	b := newFakeBackend()
	uptime := "3h 2m"
	b.status = api.BotStatus{Uptime: &uptime}
	c, _ := newTestController(t, b)
	login(t, c)

	st := c.State().Status
	assert.Equal(t, 0, st.Guilds)
	assert.Equal(t, 0, st.Users)
	assert.Equal(t, "Offline", st.Status)
	assert.Equal(t, "3h 2m", st.Uptime)
}

func TestManageGuild_NoSideEffect(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)
	before := c.State()

	c.ManageGuild("1")

	assert.Equal(t, before, c.State())
	assert.Len(t, b.Calls(), 4)
}

func TestSelectMusicGuild(t *testing.T) {
	b := newFakeBackend()
	b.music["1"] = api.MusicState{CurrentTrack: &api.Track{Title: "Song", Artist: "Band", Thumbnail: "http://img/1"}}
	c, _ := newTestController(t, b)
	login(t, c)

	assert.Empty(t, c.SelectMusicGuild(""))

	Run(context.Background(), c, c.SelectMusicGuild("1")...)
	np := c.State().Music.NowPlaying
	assert.Equal(t, NowPlaying{Playing: true, Title: "Song", Artist: "Band", Thumbnail: "http://img/1"}, np)

	Run(context.Background(), c, c.SelectMusicGuild("2")...)
	np = c.State().Music.NowPlaying
	assert.Equal(t, NowPlaying{Title: "No song is playing", Artist: "-"}, np)
}

func TestSelectMusicGuild_StaleResponseDiscarded(t *testing.T) {
	b := newFakeBackend()
	b.music["1"] = api.MusicState{CurrentTrack: &api.Track{Title: "Old"}}
	b.music["2"] = api.MusicState{CurrentTrack: &api.Track{Title: "New"}}
	c, _ := newTestController(t, b)
	login(t, c)
	ctx := context.Background()

	first := c.SelectMusicGuild("1")
	second := c.SelectMusicGuild("2")
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	// The newer response lands first; the older one arrives late.
	newer := second[0](ctx)
	older := first[0](ctx)
	assert.Empty(t, newer.Apply(c))
	assert.Empty(t, older.Apply(c))

	st := c.State().Music
	assert.Equal(t, "2", st.SelectedGuild)
	assert.Equal(t, "New", st.NowPlaying.Title)
}

func TestMusicAction(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)

	tasks, err := c.MusicAction(api.MusicPause)
	assert.True(t, errors.Is(err, ErrNoGuildSelected))
	assert.Empty(t, tasks)
	assert.Equal(t, Alert{Kind: AlertError, Text: "Select a server first"}, c.State().Alert)

	_, err = c.MusicAction(api.MusicAction("rewind"))
	assert.True(t, errors.Is(err, ErrValidation))

	Run(context.Background(), c, c.SelectMusicGuild("1")...)
	b.music["1"] = api.MusicState{CurrentTrack: &api.Track{Title: "Next Song"}}

	tasks, err = c.MusicAction(api.MusicSkip)
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	calls := b.Calls()
	assert.Equal(t, []string{"POST /api/music/1/skip", "GET /api/music/1"}, calls[len(calls)-2:])
	assert.Equal(t, "Next Song", c.State().Music.NowPlaying.Title)
}

func TestMusicAction_FailureDoesNotRefetch(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)
	Run(context.Background(), c, c.SelectMusicGuild("1")...)

	b.actionErr = &api.StatusError{Method: "POST", Path: "/api/music/1/stop", StatusCode: 500}
	tasks, err := c.MusicAction(api.MusicStop)
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	calls := b.Calls()
	assert.Equal(t, "POST /api/music/1/stop", calls[len(calls)-1])
	assert.Equal(t, AlertNone, c.State().Alert.Kind)
}

func TestSetVolume_Clamps(t *testing.T) {
	c, _ := newTestController(t, newFakeBackend())
	assert.Equal(t, DefaultVolume, c.State().Music.Volume)

	c.SetVolume(150)
	assert.Equal(t, MaxVolume, c.State().Music.Volume)
	c.SetVolume(-3)
	assert.Equal(t, MinVolume, c.State().Music.Volume)
}

func TestCustomCommands_EmptyList(t *testing.T) {
	b := newFakeBackend()
	b.commands = []api.RemoteCommand{{Name: "play", Type: api.CommandTypeSlash}}
	c, _ := newTestController(t, b)
	login(t, c)

	tasks, err := c.SwitchSection("custom")
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	st := c.State().Custom
	assert.True(t, st.Fetched)
	assert.Empty(t, st.Items)
}

func TestCreateCustomCommand_Validation(t *testing.T) {
	tests := []struct {
		name string
		form CustomCommandForm
	}{
		{name: "empty name", form: CustomCommandForm{Response: "hi"}},
		{name: "empty response", form: CustomCommandForm{Name: "greet"}},
		{name: "whitespace name", form: CustomCommandForm{Name: "   ", Response: "hi"}},
		{name: "whitespace response", form: CustomCommandForm{Name: "greet", Response: "\t\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			c, _ := newTestController(t, b)
			login(t, c)
			Run(context.Background(), c, mustSwitch(t, c, "custom")...)
			before := c.State().Custom.Items
			calls := len(b.Calls())

			tasks, err := c.CreateCustomCommand(tt.form)

			assert.True(t, errors.Is(err, ErrValidation))
			assert.Empty(t, tasks)
			assert.Len(t, b.Calls(), calls, "no request is made")
			st := c.State()
			assert.Equal(t, before, st.Custom.Items)
			assert.Equal(t, Alert{Kind: AlertError, Text: "Command name and response are required"}, st.Alert)
			assert.Equal(t, tt.form, st.Custom.Form)
		})
	}
}

func TestCreateCustomCommand_Success(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)
	login(t, c)
	Run(context.Background(), c, mustSwitch(t, c, "custom")...)

	form := CustomCommandForm{Name: "rules", Response: "Be nice"}
	tasks, err := c.CreateCustomCommand(form)
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	calls := b.Calls()
	assert.Equal(t, []string{"POST /api/commands/custom", "GET /api/commands"}, calls[len(calls)-2:])
	assert.Equal(t, []api.CustomCommandRequest{{Name: "rules", Response: "Be nice"}}, b.created)

	st := c.State()
	assert.Equal(t, Alert{Kind: AlertSuccess, Text: "Custom command created"}, st.Alert)
	assert.Equal(t, CustomCommandForm{}, st.Custom.Form)
	assert.Len(t, st.Custom.Items, 2)

	c.DismissAlert()
	assert.Equal(t, Alert{}, c.State().Alert)
}

func TestCreateCustomCommand_FailureKeepsForm(t *testing.T) {
	b := newFakeBackend()
	b.createErr = &api.StatusError{Method: "POST", Path: "/api/commands/custom", StatusCode: 400}
	c, _ := newTestController(t, b)
	login(t, c)
	Run(context.Background(), c, mustSwitch(t, c, "custom")...)
	before := c.State().Custom.Items

	form := CustomCommandForm{Name: "rules", Description: "Server rules", Response: "Be nice"}
	tasks, err := c.CreateCustomCommand(form)
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	st := c.State()
	assert.Equal(t, AlertError, st.Alert.Kind)
	assert.Equal(t, form, st.Custom.Form)
	assert.Equal(t, before, st.Custom.Items)
	assert.Equal(t, "POST /api/commands/custom", b.Calls()[len(b.Calls())-1])
}

func TestLogout_AlwaysRedirects(t *testing.T) {
	for _, logoutErr := range []error{nil, errors.New("network down")} {
		b := newFakeBackend()
		b.logoutErr = logoutErr
		c, nav := newTestController(t, b)
		login(t, c)

		Run(context.Background(), c, c.Logout()...)

		assert.Equal(t, PhaseUnauthenticated, c.Phase())
		assert.Nil(t, c.State().Session)
		assert.Empty(t, c.State().Loaded)
		assert.Equal(t, []string{"http://bot.test/auth/login"}, nav.urls)
		assert.Equal(t, "GET /auth/logout", b.Calls()[len(b.Calls())-1])
	}
}

func TestLogout_DiscardsInFlightResponses(t *testing.T) {
	b := newFakeBackend()
	b.music["1"] = api.MusicState{CurrentTrack: &api.Track{Title: "Song"}}
	c, _ := newTestController(t, b)
	login(t, c)
	ctx := context.Background()

	pending := c.SelectMusicGuild("1")
	Run(ctx, c, c.Logout()...)

	out := pending[0](ctx)
	assert.Empty(t, out.Apply(c))
	assert.False(t, c.State().Music.Fetched)
}

func TestExpiredSessionRedirects(t *testing.T) {
	b := newFakeBackend()
	c, nav := newTestController(t, b)
	login(t, c)

	b.commandErr = &api.StatusError{Method: "GET", Path: "/api/commands", StatusCode: 401}
	Run(context.Background(), c, mustSwitch(t, c, "custom")...)

	assert.Equal(t, PhaseUnauthenticated, c.Phase())
	assert.Len(t, nav.urls, 1)
}

func mustSwitch(t *testing.T, c *Controller, name string) []Task {
	t.Helper()
	tasks, err := c.SwitchSection(name)
	require.NoError(t, err)
	return tasks
}

func TestRefresh_Overview(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(t, b)

	tasks, err := c.Refresh("overview")
	require.NoError(t, err)
	assert.Empty(t, tasks, "nothing is fetched before login")

	login(t, c)
	b.status = api.BotStatus{Guilds: 5, Users: 99, Status: "Online"}

	tasks, err = c.Refresh("overview")
	require.NoError(t, err)
	Run(context.Background(), c, tasks...)

	assert.Equal(t, 5, c.State().Status.Guilds)
	assert.Equal(t, 99, c.State().Status.Users)

	_, err = c.Refresh("billing")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}
