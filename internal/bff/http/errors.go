package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
)

const (
	msgInvalidBody = "Invalid request body"
	msgInternal    = "Internal server error"
	msgUserMissing = "User not found"
)

// writeServiceError maps a service error onto the JSON error surface.
// Validation errors carry their own message; not-found errors use notFound;
// everything else is logged and reported as internal with the given message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound, internal string) {
	if msg, ok := service.ValidationMessage(err); ok {
		httpx.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgUserMissing)
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, internal)
	}
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst zero so
// the field validation reports what is missing. It writes the 400 itself
// and returns false on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil && !errors.Is(err, io.EOF) {
		slogx.FromContext(r.Context()).Debug("malformed request body", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
