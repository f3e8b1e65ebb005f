// Package data carries the command catalog shipped inside the binary.
package data

import _ "embed"

// Commands is the default catalog document.
//
//go:embed commands.json
var Commands []byte
