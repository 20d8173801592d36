package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
)

const msgInvalidYears = "years must be a comma-separated list of years"

// UserDetailsHandler serves the dashboard.
type UserDetailsHandler struct {
	DashboardService *service.DashboardService
}

// ServeHTTP handles GET /api/user-details
//
//	@Summary		User dashboard
//	@Description	Returns the user's tax history. Tax files come from one bulk call; if that fails each candidate year is fetched separately and failed years are reported in yearResults.
//	@Description	The user is taken from userId, then username, then the session.
//	@Tags			Dashboard
//	@Produce		json
//	@Param			userId		query		string	false	"User id"
//	@Param			username	query		string	false	"User id (legacy name)"
//	@Param			years		query		string	false	"Fallback years, comma separated"
//	@Success		200			{object}	DashboardResponse
//	@Failure		400			{object}	httpx.ErrorBody	"missing user id"
//	@Failure		404			{object}	httpx.ErrorBody	"user not found"
//	@Failure		500			{object}	httpx.ErrorBody	"internal error"
//	@Router			/api/user-details [get].
func (h *UserDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID := q.Get("userId")
	if userID == "" {
		userID = q.Get("username")
	}
	if userID == "" {
		if p, ok := httpx.PrincipalFromContext(r.Context()); ok {
			userID = p.UserID
		}
	}
	if strings.TrimSpace(userID) == "" {
		httpx.WriteError(w, http.StatusBadRequest, service.MsgUserIDRequired)
		return
	}

	years, ok := parseYears(q.Get("years"))
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidYears)
		return
	}

	dash, err := h.DashboardService.GetDashboard(r.Context(), service.DashboardRequest{
		UserID: userID,
		Years:  years,
	})
	if err != nil {
		writeServiceError(w, r, err, msgUserMissing, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, DashboardResponse{Success: true, Data: dash})
}

func parseYears(raw string) ([]int, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	var years []int
	for part := range strings.SplitSeq(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, false
		}
		years = append(years, n)
	}
	return years, true
}
