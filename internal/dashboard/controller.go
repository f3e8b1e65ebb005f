package dashboard

import (
	"context"
	"errors"
	"fmt"

	"botdash/internal/api"
	"botdash/pkg/logging"
)

const subsystem = "Dashboard"

// Volume bounds for the music panel.
const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 50
)

// Controller is the dashboard state machine. It is not safe for concurrent
// use; call it from the UI loop only.
type Controller struct {
	backend Backend
	nav     Navigator
	text    Strings

	phase   Phase
	authGen uint64
	session *Session
	active  Section
	loaded  map[Section]bool
	gens    map[Section]uint64

	status    StatusPanel
	guilds    GuildsPanel
	music     MusicPanel
	tempVoice TempVoicePanel
	custom    CustomPanel
	alert     Alert
}

// NewController returns a controller in the Unauthenticated phase with the
// overview active.
func NewController(backend Backend, nav Navigator, text Strings) *Controller {
	return &Controller{
		backend: backend,
		nav:     nav,
		text:    text,
		phase:   PhaseUnauthenticated,
		active:  SectionOverview,
		loaded:  make(map[Section]bool),
		gens:    make(map[Section]uint64),
		music:   MusicPanel{Volume: DefaultVolume},
	}
}

// Strings returns the controller's locale strings.
func (c *Controller) Strings() Strings {
	return c.text
}

// Phase returns the current auth phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Active returns the active section.
func (c *Controller) Active() Section {
	return c.active
}

// State returns a copy of everything a view needs.
func (c *Controller) State() State {
	loaded := make(map[Section]bool, len(c.loaded))
	for k, v := range c.loaded {
		loaded[k] = v
	}
	var session *Session
	if c.session != nil {
		s := *c.session
		session = &s
	}

	st := State{
		Phase:     c.phase,
		LoginURL:  c.backend.LoginURL(),
		Session:   session,
		Active:    c.active,
		Loaded:    loaded,
		Status:    c.status,
		Guilds:    c.guilds,
		Music:     c.music,
		TempVoice: c.tempVoice,
		Custom:    c.custom,
		Alert:     c.alert,
	}
	st.Guilds.Items = append([]GuildItem(nil), c.guilds.Items...)
	st.Music.Options = append([]GuildOption(nil), c.music.Options...)
	st.TempVoice.Options = append([]GuildOption(nil), c.tempVoice.Options...)
	st.Custom.Items = append([]CustomCommand(nil), c.custom.Items...)
	return st
}

// DismissAlert clears the inline alert.
func (c *Controller) DismissAlert() {
	c.alert = Alert{}
}

func (c *Controller) bump(s Section) uint64 {
	c.gens[s]++
	return c.gens[s]
}

func (c *Controller) current(s Section, gen uint64) bool {
	return c.phase == PhaseAuthenticated && c.gens[s] == gen
}

// CheckAuth starts the auth check. The user is fetched only when the backend
// reports an authenticated session.
func (c *Controller) CheckAuth() []Task {
	c.phase = PhaseAuthenticating
	c.authGen++
	gen := c.authGen
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		status, err := backend.CheckAuth(ctx)
		if err != nil {
			return authOutcome{gen: gen, err: fmt.Errorf("check auth: %w", err)}
		}
		if !status.Authenticated {
			return authOutcome{gen: gen, err: api.ErrUnauthenticated}
		}
		user, err := backend.User(ctx)
		if err != nil {
			return authOutcome{gen: gen, err: fmt.Errorf("fetch user: %w", err)}
		}
		return authOutcome{gen: gen, user: user}
	}}
}

type authOutcome struct {
	gen  uint64
	user api.User
	err  error
}

func (o authOutcome) Apply(c *Controller) []Task {
	if o.gen != c.authGen || c.phase != PhaseAuthenticating {
		return nil
	}
	if o.err != nil {
		if errors.Is(o.err, api.ErrUnauthenticated) {
			logging.Info(subsystem, "Not logged in, redirecting to login")
		} else {
			logging.Error(subsystem, o.err, "Auth check failed")
		}
		c.toLogin()
		return nil
	}

	c.session = NewSession(o.user)
	c.phase = PhaseAuthenticated
	logging.Info(subsystem, "Logged in as %s", o.user.Username)

	tasks := c.LoadDashboardData()
	return append(tasks, c.activate(c.active)...)
}

// SwitchSection makes name the active section. The first activation of a
// section after login loads it; later activations reuse what is loaded.
func (c *Controller) SwitchSection(name string) ([]Task, error) {
	s, err := ParseSection(name)
	if err != nil {
		return nil, err
	}
	c.active = s
	if c.phase != PhaseAuthenticated {
		return nil, nil
	}
	return c.activate(s), nil
}

// Refresh reloads name regardless of whether it was loaded.
func (c *Controller) Refresh(name string) ([]Task, error) {
	s, err := ParseSection(name)
	if err != nil {
		return nil, err
	}
	if c.phase != PhaseAuthenticated {
		return nil, nil
	}
	c.loaded[s] = true
	if s == SectionOverview {
		return c.LoadDashboardData(), nil
	}
	return c.load(s), nil
}

func (c *Controller) activate(s Section) []Task {
	if c.loaded[s] {
		return nil
	}
	c.loaded[s] = true
	return c.load(s)
}

func (c *Controller) load(s Section) []Task {
	switch s {
	case SectionMusic:
		c.music.Options = GuildOptions(c.guilds.Items)
		if c.music.SelectedGuild != "" {
			return c.fetchMusic(c.music.SelectedGuild)
		}
	case SectionTempVoice:
		c.tempVoice.Options = GuildOptions(c.guilds.Items)
	case SectionCustom:
		return c.loadCustomCommands()
	case SectionOverview, SectionModeration, SectionSettings:
		// Overview data arrives with LoadDashboardData; the others have none.
	}
	return nil
}

// LoadDashboardData fetches the bot status and then the guild list. Each
// failure only affects its own panel.
func (c *Controller) LoadDashboardData() []Task {
	gen := c.bump(SectionOverview)
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		o := dashboardOutcome{gen: gen}
		o.status, o.statusErr = backend.BotStatus(ctx)
		o.guilds, o.guildsErr = backend.UserGuilds(ctx)
		return o
	}}
}

type dashboardOutcome struct {
	gen       uint64
	status    api.BotStatus
	statusErr error
	guilds    []api.Guild
	guildsErr error
}

func (o dashboardOutcome) Apply(c *Controller) []Task {
	if !c.current(SectionOverview, o.gen) {
		return nil
	}
	if c.expired(o.statusErr) || c.expired(o.guildsErr) {
		return nil
	}

	if o.statusErr != nil {
		logging.Error(subsystem, o.statusErr, "Failed to load bot status")
		c.status.Err = o.statusErr
	} else {
		c.status = StatusDisplay(o.status, c.text)
	}

	if o.guildsErr != nil {
		logging.Error(subsystem, o.guildsErr, "Failed to load guilds")
		c.guilds.Err = o.guildsErr
		return nil
	}
	items := make([]GuildItem, 0, len(o.guilds))
	for _, g := range o.guilds {
		items = append(items, GuildDisplay(g, c.text))
	}
	c.guilds = GuildsPanel{Fetched: true, Items: items}

	// Selectors that were already built follow the new list.
	if c.loaded[SectionMusic] {
		c.music.Options = GuildOptions(items)
	}
	if c.loaded[SectionTempVoice] {
		c.tempVoice.Options = GuildOptions(items)
	}
	return nil
}

// ManageGuild is the guild entry's Manage action. It only records the choice.
func (c *Controller) ManageGuild(id string) {
	logging.Info(subsystem, "Selected guild: %s", id)
}

// SelectMusicGuild picks the music guild and fetches what it is playing.
// An empty id is ignored.
func (c *Controller) SelectMusicGuild(id string) []Task {
	if id == "" {
		return nil
	}
	c.music.SelectedGuild = id
	if c.phase != PhaseAuthenticated {
		return nil
	}
	return c.fetchMusic(id)
}

func (c *Controller) fetchMusic(guildID string) []Task {
	gen := c.bump(SectionMusic)
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		state, err := backend.MusicState(ctx, guildID)
		return musicOutcome{gen: gen, guildID: guildID, state: state, err: err}
	}}
}

type musicOutcome struct {
	gen     uint64
	guildID string
	state   api.MusicState
	err     error
}

func (o musicOutcome) Apply(c *Controller) []Task {
	if !c.current(SectionMusic, o.gen) || c.expired(o.err) {
		return nil
	}
	if o.err != nil {
		logging.Error(subsystem, o.err, "Failed to load music state for guild %s", o.guildID)
		return nil
	}
	c.music.Fetched = true
	c.music.NowPlaying = NowPlayingDisplay(o.state, c.text)
	return nil
}

// MusicAction sends a player control for the selected guild and refreshes
// the now-playing display once it succeeds.
func (c *Controller) MusicAction(action api.MusicAction) ([]Task, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown music action %q", ErrValidation, action)
	}
	guildID := c.music.SelectedGuild
	if guildID == "" {
		c.alert = Alert{Kind: AlertError, Text: c.text.SelectServerFirst}
		return nil, ErrNoGuildSelected
	}
	if c.phase != PhaseAuthenticated {
		return nil, nil
	}
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		err := backend.MusicAction(ctx, guildID, action)
		return musicActionOutcome{guildID: guildID, action: action, err: err}
	}}, nil
}

type musicActionOutcome struct {
	guildID string
	action  api.MusicAction
	err     error
}

func (o musicActionOutcome) Apply(c *Controller) []Task {
	if c.phase != PhaseAuthenticated || c.expired(o.err) {
		return nil
	}
	if o.err != nil {
		logging.Error(subsystem, o.err, "Music %s failed for guild %s", o.action, o.guildID)
		return nil
	}
	if c.music.SelectedGuild != o.guildID {
		return nil
	}
	return c.fetchMusic(o.guildID)
}

// SetVolume stores the volume slider position, clamped to range. The
// backend has no volume endpoint so nothing is sent.
func (c *Controller) SetVolume(v int) {
	if v < MinVolume {
		v = MinVolume
	}
	if v > MaxVolume {
		v = MaxVolume
	}
	c.music.Volume = v
	logging.Debug(subsystem, "Volume updated to %d", v)
}

// SelectTempVoiceGuild picks the temp voice guild. It is local only.
func (c *Controller) SelectTempVoiceGuild(id string) {
	if id == "" {
		return
	}
	c.tempVoice.SelectedGuild = id
}

func (c *Controller) loadCustomCommands() []Task {
	gen := c.bump(SectionCustom)
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		cmds, err := backend.Commands(ctx)
		return customOutcome{gen: gen, commands: cmds, err: err}
	}}
}

type customOutcome struct {
	gen      uint64
	commands []api.RemoteCommand
	err      error
}

func (o customOutcome) Apply(c *Controller) []Task {
	if !c.current(SectionCustom, o.gen) || c.expired(o.err) {
		return nil
	}
	if o.err != nil {
		logging.Error(subsystem, o.err, "Failed to load custom commands")
		c.custom.Err = o.err
		return nil
	}
	c.custom.Fetched = true
	c.custom.Err = nil
	c.custom.Items = CustomCommands(o.commands)
	return nil
}

// UpdateForm replaces the create form's contents.
func (c *Controller) UpdateForm(f CustomCommandForm) {
	c.custom.Form = f
}

// CreateCustomCommand submits the form. Invalid input raises an alert and
// sends nothing.
func (c *Controller) CreateCustomCommand(f CustomCommandForm) ([]Task, error) {
	c.custom.Form = f
	if err := ValidateForm(f); err != nil {
		c.alert = Alert{Kind: AlertError, Text: c.text.NameAndResponseRequired}
		return nil, err
	}
	if c.phase != PhaseAuthenticated {
		return nil, nil
	}
	req := api.CustomCommandRequest{Name: f.Name, Description: f.Description, Response: f.Response}
	backend := c.backend

	return []Task{func(ctx context.Context) Outcome {
		return createOutcome{name: req.Name, err: backend.CreateCustomCommand(ctx, req)}
	}}, nil
}

type createOutcome struct {
	name string
	err  error
}

func (o createOutcome) Apply(c *Controller) []Task {
	if c.phase != PhaseAuthenticated || c.expired(o.err) {
		return nil
	}
	if o.err != nil {
		logging.Error(subsystem, o.err, "Failed to create custom command %s", o.name)
		c.alert = Alert{Kind: AlertError, Text: c.text.CustomCommandFailed}
		return nil
	}
	logging.Info(subsystem, "Created custom command %s", o.name)
	c.alert = Alert{Kind: AlertSuccess, Text: c.text.CustomCommandCreated}
	c.custom.Form = CustomCommandForm{}
	return c.loadCustomCommands()
}

// Logout ends the backend session. The local session is cleared and the
// user sent to login whatever the backend answers.
func (c *Controller) Logout() []Task {
	backend := c.backend
	return []Task{func(ctx context.Context) Outcome {
		return logoutOutcome{err: backend.Logout(ctx)}
	}}
}

type logoutOutcome struct {
	err error
}

func (o logoutOutcome) Apply(c *Controller) []Task {
	if o.err != nil {
		logging.Error(subsystem, o.err, "Logout request failed")
	}
	c.toLogin()
	return nil
}

// expired handles a 401 on a data call: the session is gone, so the user
// goes back to login. It reports whether that happened.
func (c *Controller) expired(err error) bool {
	if err == nil || !errors.Is(err, api.ErrUnauthenticated) {
		return false
	}
	logging.Warn(subsystem, "Session expired, redirecting to login")
	c.toLogin()
	return true
}

func (c *Controller) toLogin() {
	c.phase = PhaseUnauthenticated
	c.session = nil
	c.authGen++
	for _, s := range Sections {
		c.gens[s]++
	}
	c.loaded = make(map[Section]bool)
	c.status = StatusPanel{}
	c.guilds = GuildsPanel{}
	c.music = MusicPanel{Volume: c.music.Volume}
	c.tempVoice = TempVoicePanel{}
	c.custom = CustomPanel{}
	c.nav.ToLogin(c.backend.LoginURL())
}
