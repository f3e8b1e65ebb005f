package api

// AuthStatus is the body of GET /auth/check.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// User is the logged-in Discord user from GET /auth/user.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

// BotStatus is the body of GET /api/bot/status.
type BotStatus struct {
	Guilds int     `json:"guilds"`
	Users  int     `json:"users"`
	Status string  `json:"status"`
	Uptime *string `json:"uptime,omitempty"`
}

// Guild is a server the bot is installed in.
type Guild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconURL     string `json:"icon_url"`
	MemberCount int    `json:"member_count"`
}

type guildList struct {
	Guilds []Guild `json:"guilds"`
}

// Command types reported by GET /api/commands.
const (
	CommandTypePrefix = "prefix"
	CommandTypeSlash  = "slash"
	CommandTypeCustom = "custom"
)

// RemoteCommand is one entry of GET /api/commands.
type RemoteCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Usage       string   `json:"usage,omitempty"`
	Category    string   `json:"category,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

type commandList struct {
	Commands []RemoteCommand `json:"commands"`
}

// CustomCommandRequest is the body of POST /api/commands/custom.
type CustomCommandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Response    string `json:"response"`
}

// Track is the song currently playing in a guild.
type Track struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
}

// MusicState is the body of GET /api/music/{guildId}.
type MusicState struct {
	CurrentTrack *Track `json:"currentTrack,omitempty"`
}

// MusicAction is a mutating player control.
type MusicAction string

const (
	MusicPause  MusicAction = "pause"
	MusicResume MusicAction = "resume"
	MusicSkip   MusicAction = "skip"
	MusicStop   MusicAction = "stop"
)

// MusicActions lists the supported controls in display order.
var MusicActions = []MusicAction{MusicPause, MusicResume, MusicSkip, MusicStop}

// Valid reports whether a is one of the supported controls.
func (a MusicAction) Valid() bool {
	for _, known := range MusicActions {
		if a == known {
			return true
		}
	}
	return false
}
