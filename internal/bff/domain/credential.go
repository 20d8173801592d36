package domain

import "time"

// Credential is the locally stored password for an upstream user.
type Credential struct {
	UserID       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
