package model

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"botdash/pkg/logging"
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Constants for UI
const (
	MaxActivityLogLines = 1000
	StatusMessageTTL    = 3 * time.Second
	CopiedFeedbackTTL   = 2 * time.Second
)

// ClearStatusBarMsg clears the timed status bar message.
type ClearStatusBarMsg struct{}

// NewLogEntryMsg carries one record from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// ListenForLogEntriesCmd waits for the next log record. It returns nil once
// the channel is closed, which ends the listen loop.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// StatusBar is the timed one-line message shown at the bottom of both programs.
type StatusBar struct {
	Message     string
	Type        MessageType
	clearCancel chan struct{}
}

// Set shows message and schedules its removal. A newer message cancels the
// pending clear of an older one.
func (s *StatusBar) Set(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	s.Message = message
	s.Type = msgType

	if s.clearCancel != nil {
		close(s.clearCancel)
	}
	s.clearCancel = make(chan struct{})
	captured := s.clearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// Clear removes the current message.
func (s *StatusBar) Clear() {
	s.Message = ""
	s.Type = StatusBarInfo
	s.clearCancel = nil
}

// ActivityLog is the in-app log shown in the log overlay.
type ActivityLog struct {
	Lines []string
	Dirty bool
}

// Add formats entry and appends it. Debug records are kept only in debug mode.
func (l *ActivityLog) Add(entry logging.LogEntry, debug bool) {
	if entry.Level < logging.LevelInfo && !debug {
		return
	}
	line := fmt.Sprintf("%s [%s] [%s] %s",
		entry.Timestamp.Format("15:04:05.000"),
		entry.Level.String(),
		entry.Subsystem,
		entry.Message)
	if entry.Err != nil {
		line = fmt.Sprintf("%s -- Error: %v", line, entry.Err)
	}
	l.Lines = append(l.Lines, line)
	if len(l.Lines) > MaxActivityLogLines {
		l.Lines = l.Lines[len(l.Lines)-MaxActivityLogLines:]
	}
	l.Dirty = true
}
