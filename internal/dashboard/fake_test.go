package dashboard

import (
	"context"
	"fmt"
	"sync"

	"botdash/internal/api"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	auth       api.AuthStatus
	authErr    error
	user       api.User
	userErr    error
	logoutErr  error
	status     api.BotStatus
	statusErr  error
	guilds     []api.Guild
	guildsErr  error
	commands   []api.RemoteCommand
	commandErr error
	createErr  error
	created    []api.CustomCommandRequest
	music      map[string]api.MusicState
	musicErr   error
	actionErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		auth:   api.AuthStatus{Authenticated: true},
		user:   api.User{ID: "42", Username: "ayu", Avatar: "abc", Discriminator: "0"},
		status: api.BotStatus{Guilds: 2, Users: 30, Status: "Online"},
		guilds: []api.Guild{
			{ID: "1", Name: "Home", IconURL: "https://cdn.example/1.png", MemberCount: 10},
			{ID: "2", Name: "Lab", MemberCount: 3},
		},
		commands: []api.RemoteCommand{
			{Name: "play", Description: "Play music", Type: api.CommandTypeSlash},
			{Name: "hello", Description: "Says hi", Type: api.CommandTypeCustom},
		},
		music: map[string]api.MusicState{},
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) CheckAuth(ctx context.Context) (api.AuthStatus, error) {
	f.record("GET /auth/check")
	return f.auth, f.authErr
}

func (f *fakeBackend) User(ctx context.Context) (api.User, error) {
	f.record("GET /auth/user")
	return f.user, f.userErr
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.record("GET /auth/logout")
	return f.logoutErr
}

func (f *fakeBackend) BotStatus(ctx context.Context) (api.BotStatus, error) {
	f.record("GET /api/bot/status")
	return f.status, f.statusErr
}

func (f *fakeBackend) UserGuilds(ctx context.Context) ([]api.Guild, error) {
	f.record("GET /api/user/guilds")
	return f.guilds, f.guildsErr
}

func (f *fakeBackend) Commands(ctx context.Context) ([]api.RemoteCommand, error) {
	f.record("GET /api/commands")
	return f.commands, f.commandErr
}

func (f *fakeBackend) CreateCustomCommand(ctx context.Context, req api.CustomCommandRequest) error {
	f.record("POST /api/commands/custom")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr == nil {
		f.created = append(f.created, req)
		f.commands = append(f.commands, api.RemoteCommand{Name: req.Name, Description: req.Description, Type: api.CommandTypeCustom})
	}
	return f.createErr
}

func (f *fakeBackend) MusicState(ctx context.Context, guildID string) (api.MusicState, error) {
	f.record("GET /api/music/" + guildID)
	return f.music[guildID], f.musicErr
}

func (f *fakeBackend) MusicAction(ctx context.Context, guildID string, action api.MusicAction) error {
	f.record(fmt.Sprintf("POST /api/music/%s/%s", guildID, action))
	return f.actionErr
}

func (f *fakeBackend) LoginURL() string {
	return "http://bot.test/auth/login"
}

type fakeNavigator struct {
	urls []string
}

func (n *fakeNavigator) ToLogin(url string) {
	n.urls = append(n.urls, url)
}
