// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The loop owns the
// breathing clock and its ticker, which keeps every state change on one
// goroutine.
package control

import "Breathe/timer"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdStart CommandType = iota
	CmdStop
	CmdToggle
	CmdSetDurations
	CmdReset
)

// String names the command for logs.
func (c CommandType) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdToggle:
		return "toggle"
	case CmdSetDurations:
		return "set-durations"
	case CmdReset:
		return "reset"
	}
	return "unknown"
}

// Command is the message sent from UI to Loop.Run. The optional Reply channel
// is signalled once the command has been applied (useful for keeping UI state
// in sync).
type Command struct {
	Type      CommandType
	Durations timer.Durations // used by CmdSetDurations
	Reply     chan error      // optional reply channel
}
