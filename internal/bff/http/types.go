package http

import (
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

// Request and response bodies. Anything shaped by the record service is
// passed through with its taxsdk type.

// LoginRequest accepts the current {userId, password} body and the legacy
// {email, password} one, where email carried the user id.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SessionResponse struct {
	Success bool        `json:"success"`
	Data    SessionInfo `json:"data"`
}

type SessionInfo struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DashboardResponse struct {
	Success bool             `json:"success"`
	Data    domain.Dashboard `json:"data"`
}

type TaxFileResponse struct {
	Success bool           `json:"success"`
	Data    taxsdk.TaxFile `json:"data"`
}

type RefundResponse struct {
	Success bool          `json:"success"`
	Data    taxsdk.Refund `json:"data"`
}

type RefundEventResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
}

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
