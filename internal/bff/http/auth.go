package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
)

const msgLegacyCredentialsRequired = "Email and password are required"

// AuthHandler serves login, logout and the current session.
type AuthHandler struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
}

// HandleLogin handles POST /api/login
//
//	@Summary		Log in
//	@Description	Checks a user id and password and starts a session. The legacy body {email, password} is accepted, with email carrying the user id.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest		true	"Credentials"
//	@Success		200		{object}	LoginResponse		"session token and user"
//	@Failure		400		{object}	httpx.ErrorBody		"missing fields"
//	@Failure		401		{object}	httpx.ErrorBody		"invalid credentials"
//	@Failure		404		{object}	httpx.ErrorBody		"user not found"
//	@Failure		429		{object}	httpx.ErrorBody		"rate limited"
//	@Failure		500		{object}	httpx.ErrorBody		"internal error"
//	@Router			/api/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	identifier, legacy := req.UserID, false
	if identifier == "" && req.Email != "" {
		identifier, legacy = req.Email, true
	}

	user, err := h.AuthService.Authenticate(ctx, identifier, req.Password)
	if err != nil {
		if legacy && errors.Is(err, service.ErrValidation) {
			httpx.WriteError(w, http.StatusBadRequest, msgLegacyCredentialsRequired)
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			slogx.FromContext(ctx).Info("login rejected", "user_id", identifier)
		}
		writeServiceError(w, r, err, msgUserMissing, msgInternal)
		return
	}

	issued, err := h.SessionService.Issue(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, msgUserMissing, msgInternal)
		return
	}

	slogx.FromContext(ctx).Info("login succeeded", "user_id", user.UserID, "session_id", issued.Session.ID)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		UserID:    user.UserID,
		Username:  user.DisplayName(),
		Message:   "Login successful",
		Token:     issued.Token,
		ExpiresAt: issued.Session.ExpiresAt,
	})
}

// HandleLogout handles POST /api/logout
//
//	@Summary		Log out
//	@Description	Revokes the caller's session. The token stops working immediately.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	MessageResponse
//	@Failure		401	{object}	httpx.ErrorBody	"no valid session"
//	@Failure		500	{object}	httpx.ErrorBody	"internal error"
//	@Router			/api/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := httpx.PrincipalFromContext(ctx)

	if err := h.SessionService.Revoke(ctx, p.SessionID); err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		writeServiceError(w, r, err, msgUserMissing, msgInternal)
		return
	}

	slogx.FromContext(ctx).Info("logout", "session_id", p.SessionID)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Logged out"})
}

// HandleSession handles GET /api/session
//
//	@Summary		Current session
//	@Description	Returns the session behind the bearer token.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	httpx.ErrorBody	"no valid session"
//	@Router			/api/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		Success: true,
		Data: SessionInfo{
			SessionID: p.SessionID,
			UserID:    p.UserID,
			Username:  p.Username,
			ExpiresAt: p.ExpiresAt,
		},
	})
}
