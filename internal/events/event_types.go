package events

import (
	"time"

	"github.com/shubh1628/Dabba-delight/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

// EventSessionChanged is the argument-less change signal emitted on every
// session write or clear.
const EventSessionChanged EventType = "dabbaUserChanged"

// SessionAction distinguishes the mutation behind a change signal.
type SessionAction string

const (
	SessionActionWrite SessionAction = "write"
	SessionActionClear SessionAction = "clear"
)

// Event represents a change signal. Origin names the process that emitted
// it so relayed copies can be recognised.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Scope     domain.Scope  `json:"scope"`
	Action    SessionAction `json:"action"`
	Origin    string        `json:"origin"`
	Timestamp time.Time     `json:"timestamp"`
}
