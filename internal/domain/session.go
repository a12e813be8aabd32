package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// LoginTimeLayout is the stored form of loginTime: UTC with exactly three
// fractional digits, e.g. 2024-01-02T03:04:05.678Z.
const LoginTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// SessionRecord is the client-held proof of login for one session scope.
// It is trusted as stored and never re-checked against the user table.
type SessionRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UserType  UserType  `json:"userType"`
	LoginTime time.Time `json:"loginTime"`
}

type sessionRecordJSON struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	UserType  UserType `json:"userType"`
	LoginTime string   `json:"loginTime"`
}

// NewSessionRecord builds a record for user stamped at now, truncated to
// millisecond precision in UTC.
func NewSessionRecord(user *User, now time.Time) *SessionRecord {
	return &SessionRecord{
		ID:        user.ID,
		Email:     user.Email,
		UserType:  user.UserType,
		LoginTime: now.UTC().Truncate(time.Millisecond),
	}
}

// MarshalJSON writes loginTime in LoginTimeLayout.
func (r SessionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecordJSON{
		ID:        r.ID,
		Email:     r.Email,
		UserType:  r.UserType,
		LoginTime: r.LoginTime.UTC().Format(LoginTimeLayout),
	})
}

// UnmarshalJSON accepts any RFC 3339 loginTime. A missing loginTime is
// left zero.
func (r *SessionRecord) UnmarshalJSON(data []byte) error {
	var raw sessionRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var loginTime time.Time
	if raw.LoginTime != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw.LoginTime)
		if err != nil {
			return fmt.Errorf("loginTime: %w", err)
		}
		loginTime = parsed
	}
	*r = SessionRecord{
		ID:        raw.ID,
		Email:     raw.Email,
		UserType:  raw.UserType,
		LoginTime: loginTime,
	}
	return nil
}
