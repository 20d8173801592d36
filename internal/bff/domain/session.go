package domain

import "time"

// Session is a login session. Its ID doubles as the token's sid claim.
type Session struct {
	ID               string
	UserID           string
	Username         string
	TokenFingerprint string
	ExpiresAt        time.Time
	Revoked          bool
	CreatedAt        time.Time
}

// Active reports whether the session can still authenticate requests at now.
func (s Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
