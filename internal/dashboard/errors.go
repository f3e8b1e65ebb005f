package dashboard

import "errors"

var (
	// ErrValidation is returned when user input is rejected before any request is made.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownSection is returned for section names outside Sections.
	ErrUnknownSection = errors.New("unknown section")

	// ErrNoGuildSelected is returned by guild-scoped actions before a guild is picked.
	ErrNoGuildSelected = errors.New("no guild selected")
)
