package client

import (
	"time"

	"github.com/tomz197/strike/internal/input"
)

// messageDuration is how long a status message stays on screen.
const messageDuration = 2 * time.Second

// ClientState holds per-connection presentation state. The game itself lives
// in the session; this only tracks what the terminal shows.
type ClientState struct {
	Input      input.Input
	ShopOpen   bool // Shop overlay visible
	MouseHeld  bool // Left button down
	Running    bool // Client loop running
	isInactive bool // Inactivity warning shown

	message      string
	messageUntil time.Time
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}

// SetMessage shows msg on the status line for a while.
func (s *ClientState) SetMessage(msg string, now time.Time) {
	s.message = msg
	s.messageUntil = now.Add(messageDuration)
}

// Message returns the current status message, if any.
func (s *ClientState) Message(now time.Time) string {
	if now.After(s.messageUntil) {
		return ""
	}
	return s.message
}
