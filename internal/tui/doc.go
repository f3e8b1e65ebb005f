// Package tui contains the terminal front ends of botdash.
//
// The layout follows a model/view/controller split:
//
//   - design holds the adaptive colour palette and shared lipgloss styles.
//   - components are small render helpers (panel, header, status bar).
//   - model holds program state, key maps and the messages that flow
//     through the bubbletea loop.
//   - view turns a model into a string and never mutates it.
//   - controller implements tea.Model for each program and builds the
//     tea.Program.
//
// There are two programs: the command catalog browser and the dashboard
// control panel. They share the design system, components, activity log and
// the timed status bar.
package tui
