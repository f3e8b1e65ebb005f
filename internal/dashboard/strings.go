package dashboard

import "botdash/internal/config"

// Strings holds the user-facing text for one locale.
type Strings struct {
	NoServers               string
	ServersError            string
	NoCustomCommands        string
	CustomCommandsError     string
	NoSongPlaying           string
	NoArtist                string
	SelectServerFirst       string
	SelectServerPlaceholder string
	NameAndResponseRequired string
	CustomCommandCreated    string
	CustomCommandFailed     string
	StatusOffline           string
	MembersFormat           string
	Manage                  string
	Loading                 string
	SectionTitles           map[Section]string
}

var english = Strings{
	NoServers:               "No servers available",
	ServersError:            "Failed to load servers",
	NoCustomCommands:        "No custom commands yet",
	CustomCommandsError:     "Failed to load custom commands",
	NoSongPlaying:           "No song is playing",
	NoArtist:                "-",
	SelectServerFirst:       "Select a server first",
	SelectServerPlaceholder: "Select a server...",
	NameAndResponseRequired: "Command name and response are required",
	CustomCommandCreated:    "Custom command created",
	CustomCommandFailed:     "Failed to create custom command",
	StatusOffline:           "Offline",
	MembersFormat:           "%d members",
	Manage:                  "Manage",
	Loading:                 "Loading...",
	SectionTitles: map[Section]string{
		SectionOverview:   "Overview",
		SectionMusic:      "Music",
		SectionModeration: "Moderation",
		SectionTempVoice:  "TempVoice",
		SectionCustom:     "Custom Commands",
		SectionSettings:   "Settings",
	},
}

var indonesian = Strings{
	NoServers:               "Tidak ada server yang tersedia",
	ServersError:            "Gagal memuat server",
	NoCustomCommands:        "Belum ada custom commands",
	CustomCommandsError:     "Gagal memuat custom commands",
	NoSongPlaying:           "Tidak ada lagu yang diputar",
	NoArtist:                "-",
	SelectServerFirst:       "Pilih server terlebih dahulu",
	SelectServerPlaceholder: "Pilih server...",
	NameAndResponseRequired: "Nama command dan response harus diisi",
	CustomCommandCreated:    "Custom command berhasil dibuat",
	CustomCommandFailed:     "Gagal membuat custom command",
	StatusOffline:           "Offline",
	MembersFormat:           "%d members",
	Manage:                  "Manage",
	Loading:                 "Memuat...",
	SectionTitles: map[Section]string{
		SectionOverview:   "Ringkasan",
		SectionMusic:      "Musik",
		SectionModeration: "Moderasi",
		SectionTempVoice:  "TempVoice",
		SectionCustom:     "Custom Commands",
		SectionSettings:   "Pengaturan",
	},
}

// StringsFor returns the strings for locale, falling back to English.
func StringsFor(locale string) Strings {
	if locale == config.LocaleIndonesian {
		return indonesian
	}
	return english
}

// Title returns the display title of s.
func (s Strings) Title(section Section) string {
	if t, ok := s.SectionTitles[section]; ok {
		return t
	}
	return string(section)
}
