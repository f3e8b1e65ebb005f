package dashboard

import (
	"context"
	"fmt"

	"botdash/internal/api"
)

// Backend is the subset of the backend API the controller needs.
type Backend interface {
	CheckAuth(ctx context.Context) (api.AuthStatus, error)
	User(ctx context.Context) (api.User, error)
	Logout(ctx context.Context) error
	BotStatus(ctx context.Context) (api.BotStatus, error)
	UserGuilds(ctx context.Context) ([]api.Guild, error)
	Commands(ctx context.Context) ([]api.RemoteCommand, error)
	CreateCustomCommand(ctx context.Context, req api.CustomCommandRequest) error
	MusicState(ctx context.Context, guildID string) (api.MusicState, error)
	MusicAction(ctx context.Context, guildID string, action api.MusicAction) error
	LoginURL() string
}

// Navigator moves the user to the login entry point.
type Navigator interface {
	ToLogin(url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url string)

func (f NavigatorFunc) ToLogin(url string) { f(url) }

// Phase is the authentication state.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticating
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "Unauthenticated"
	case PhaseAuthenticating:
		return "Authenticating"
	case PhaseAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Section names a dashboard panel.
type Section string

const (
	SectionOverview   Section = "overview"
	SectionMusic      Section = "music"
	SectionModeration Section = "moderation"
	SectionTempVoice  Section = "tempvoice"
	SectionCustom     Section = "custom"
	SectionSettings   Section = "settings"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionOverview,
	SectionMusic,
	SectionModeration,
	SectionTempVoice,
	SectionCustom,
	SectionSettings,
}

// ParseSection maps a name to a Section.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// Session is the logged-in user as displayed.
type Session struct {
	ID            string
	Username      string
	Avatar        string
	Discriminator string
	AvatarURL     string
}

// StatusPanel is the bot status summary on the overview.
type StatusPanel struct {
	Fetched bool
	Guilds  int
	Users   int
	Status  string
	Uptime  string
	Err     error
}

// GuildItem is one rendered guild entry.
type GuildItem struct {
	ID          string
	Name        string
	IconURL     string
	MemberCount int
	Members     string
}

// GuildsPanel is the overview's server list.
type GuildsPanel struct {
	Fetched bool
	Items   []GuildItem
	Err     error
}

// GuildOption is an entry of a guild selector.
type GuildOption struct {
	ID   string
	Name string
}

// NowPlaying is the music panel's track display with fallbacks applied.
type NowPlaying struct {
	Playing   bool
	Title     string
	Artist    string
	Thumbnail string
}

// MusicPanel holds the music section.
type MusicPanel struct {
	Options       []GuildOption
	SelectedGuild string
	Fetched       bool
	NowPlaying    NowPlaying
	Volume        int
}

// TempVoicePanel holds the temp voice section.
type TempVoicePanel struct {
	Options       []GuildOption
	SelectedGuild string
}

// CustomCommand is one entry of the custom command list.
type CustomCommand struct {
	Name        string
	Description string
}

// CustomCommandForm is the create form's contents.
type CustomCommandForm struct {
	Name        string
	Description string
	Response    string
}

// CustomPanel holds the custom commands section.
type CustomPanel struct {
	Fetched bool
	Items   []CustomCommand
	Err     error
	Form    CustomCommandForm
}

// AlertKind classifies an inline alert.
type AlertKind int

const (
	AlertNone AlertKind = iota
	AlertInfo
	AlertSuccess
	AlertError
)

// Alert is an inline message shown until dismissed or replaced.
type Alert struct {
	Kind AlertKind
	Text string
}

// State is a copy of the controller's state for rendering.
type State struct {
	Phase     Phase
	LoginURL  string
	Session   *Session
	Active    Section
	Loaded    map[Section]bool
	Status    StatusPanel
	Guilds    GuildsPanel
	Music     MusicPanel
	TempVoice TempVoicePanel
	Custom    CustomPanel
	Alert     Alert
}
