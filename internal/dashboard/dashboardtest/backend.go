// Package dashboardtest provides an in-memory dashboard.Backend for tests
// of the packages that drive the dashboard controller.
package dashboardtest

import (
	"context"
	"fmt"
	"sync"

	"botdash/internal/api"
)

// LoginURL is the login address the fake reports.
const LoginURL = "http://bot.test/auth/login"

// Backend answers every endpoint from its fields and records each call as
// "METHOD /path".
type Backend struct {
	mu    sync.Mutex
	calls []string

	Auth       api.AuthStatus
	AuthErr    error
	Me         api.User
	UserErr    error
	LogoutErr  error
	Status     api.BotStatus
	StatusErr  error
	Guilds     []api.Guild
	GuildsErr  error
	Remote     []api.RemoteCommand
	CommandErr error
	CreateErr  error
	Created    []api.CustomCommandRequest
	Music      map[string]api.MusicState
	MusicErr   error
	ActionErr  error
}

// New returns a backend with a logged-in user, two guilds and one custom
// command.
func New() *Backend {
	return &Backend{
		Auth:   api.AuthStatus{Authenticated: true},
		Me:     api.User{ID: "42", Username: "ayu", Avatar: "abc", Discriminator: "0"},
		Status: api.BotStatus{Guilds: 2, Users: 30, Status: "Online"},
		Guilds: []api.Guild{
			{ID: "1", Name: "Home", IconURL: "https://cdn.example/1.png", MemberCount: 10},
			{ID: "2", Name: "Lab", MemberCount: 3},
		},
		Remote: []api.RemoteCommand{
			{Name: "play", Description: "Play music", Type: api.CommandTypeSlash},
			{Name: "hello", Description: "Says hi", Type: api.CommandTypeCustom},
		},
		Music: map[string]api.MusicState{},
	}
}

// Calls returns the recorded calls in order.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *Backend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *Backend) CheckAuth(ctx context.Context) (api.AuthStatus, error) {
	b.record("GET /auth/check")
	return b.Auth, b.AuthErr
}

func (b *Backend) User(ctx context.Context) (api.User, error) {
	b.record("GET /auth/user")
	return b.Me, b.UserErr
}

func (b *Backend) Logout(ctx context.Context) error {
	b.record("GET /auth/logout")
	return b.LogoutErr
}

func (b *Backend) BotStatus(ctx context.Context) (api.BotStatus, error) {
	b.record("GET /api/bot/status")
	return b.Status, b.StatusErr
}

func (b *Backend) UserGuilds(ctx context.Context) ([]api.Guild, error) {
	b.record("GET /api/user/guilds")
	return b.Guilds, b.GuildsErr
}

func (b *Backend) Commands(ctx context.Context) ([]api.RemoteCommand, error) {
	b.record("GET /api/commands")
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.RemoteCommand(nil), b.Remote...), b.CommandErr
}

func (b *Backend) CreateCustomCommand(ctx context.Context, req api.CustomCommandRequest) error {
	b.record("POST /api/commands/custom")
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CreateErr != nil {
		return b.CreateErr
	}
	b.Created = append(b.Created, req)
	b.Remote = append(b.Remote, api.RemoteCommand{Name: req.Name, Description: req.Description, Type: api.CommandTypeCustom})
	return nil
}

func (b *Backend) MusicState(ctx context.Context, guildID string) (api.MusicState, error) {
	b.record("GET /api/music/" + guildID)
	return b.Music[guildID], b.MusicErr
}

func (b *Backend) MusicAction(ctx context.Context, guildID string, action api.MusicAction) error {
	b.record(fmt.Sprintf("POST /api/music/%s/%s", guildID, action))
	return b.ActionErr
}

func (b *Backend) LoginURL() string {
	return LoginURL
}
