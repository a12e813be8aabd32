package domain

import "time"

// Scope identifies one session storage scope, the server-side counterpart of
// a single browser's local storage.
type Scope string

// ScopeToken describes an issued scope cookie.
type ScopeToken struct {
	Scope     Scope
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
