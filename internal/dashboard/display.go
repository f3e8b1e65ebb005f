package dashboard

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"botdash/internal/api"
)

// DefaultGuildIcon is shown for guilds without an icon.
var DefaultGuildIcon = discordgo.EndpointDefaultUserAvatar(0)

// AvatarURL returns the user's CDN avatar, or the default avatar Discord
// assigns when the user has none.
func AvatarURL(u api.User) string {
	du := discordgo.User{ID: u.ID, Avatar: u.Avatar, Discriminator: u.Discriminator}
	return du.AvatarURL("")
}

// NewSession builds the displayed session from the backend user.
func NewSession(u api.User) *Session {
	return &Session{
		ID:            u.ID,
		Username:      u.Username,
		Avatar:        u.Avatar,
		Discriminator: u.Discriminator,
		AvatarURL:     AvatarURL(u),
	}
}

// StatusDisplay applies the overview fallbacks to a status response.
func StatusDisplay(s api.BotStatus, text Strings) StatusPanel {
	out := StatusPanel{
		Fetched: true,
		Guilds:  s.Guilds,
		Users:   s.Users,
		Status:  s.Status,
	}
	if out.Status == "" {
		out.Status = text.StatusOffline
	}
	if s.Uptime != nil {
		out.Uptime = *s.Uptime
	}
	return out
}

// GuildDisplay renders a guild entry.
func GuildDisplay(g api.Guild, text Strings) GuildItem {
	icon := g.IconURL
	if icon == "" {
		icon = DefaultGuildIcon
	}
	return GuildItem{
		ID:          g.ID,
		Name:        g.Name,
		IconURL:     icon,
		MemberCount: g.MemberCount,
		Members:     fmt.Sprintf(text.MembersFormat, g.MemberCount),
	}
}

// GuildOptions builds selector entries in guild order.
func GuildOptions(items []GuildItem) []GuildOption {
	out := make([]GuildOption, 0, len(items))
	for _, g := range items {
		out = append(out, GuildOption{ID: g.ID, Name: g.Name})
	}
	return out
}

// NowPlayingDisplay applies the music fallbacks.
func NowPlayingDisplay(s api.MusicState, text Strings) NowPlaying {
	np := NowPlaying{Title: text.NoSongPlaying, Artist: text.NoArtist}
	t := s.CurrentTrack
	if t == nil {
		return np
	}
	np.Playing = true
	if t.Title != "" {
		np.Title = t.Title
	}
	if t.Artist != "" {
		np.Artist = t.Artist
	}
	np.Thumbnail = t.Thumbnail
	return np
}

// CustomCommands keeps only user-defined commands, in response order.
func CustomCommands(cmds []api.RemoteCommand) []CustomCommand {
	out := make([]CustomCommand, 0)
	for _, c := range cmds {
		if c.Type != api.CommandTypeCustom {
			continue
		}
		out = append(out, CustomCommand{Name: c.Name, Description: c.Description})
	}
	return out
}

// ValidateForm checks the create form. Whitespace-only fields count as empty.
func ValidateForm(f CustomCommandForm) error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Response) == "" {
		missing = append(missing, "response")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, " and "))
	}
	return nil
}
