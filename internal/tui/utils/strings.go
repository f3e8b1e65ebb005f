package utils

import "github.com/mattn/go-runewidth"

// TruncateString cuts s to at most width terminal cells. Wide runes are
// counted by their display width.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

// Ellipsize cuts s to width cells, ending in "..." when it had to cut.
func Ellipsize(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate("...", width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
