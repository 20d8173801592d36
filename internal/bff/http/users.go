package http

import (
	"net/http"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

const msgCreateUserFailed = "Failed to create user"

// UsersHandler serves the user directory.
type UsersHandler struct {
	UserService         *service.UserService
	RefundStatusService *service.RefundStatusService
}

// HandleList handles GET /api/users
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	taxsdk.UserList
//	@Failure		500	{object}	httpx.ErrorBody	"record service failure"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgInternal, "Failed to fetch users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /api/users
//
//	@Summary		Create user
//	@Description	Registers a user with the record service under a generated id. An optional password becomes the user's login credential.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"New user"
//	@Success		201		{object}	taxsdk.User
//	@Failure		400		{object}	httpx.ErrorBody	"missing names"
//	@Failure		500		{object}	httpx.ErrorBody	"record service message, or Failed to create user"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.UserService.Create(r.Context(), service.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if _, ok := service.ValidationMessage(err); ok {
			writeServiceError(w, r, err, msgInternal, msgCreateUserFailed)
			return
		}

		slogx.FromContext(r.Context()).Error("create user failed", "error", err)
		msg := msgCreateUserFailed
		if apiErr, ok := taxsdk.AsAPIError(err); ok && apiErr.Message != "" {
			msg = apiErr.Message
		}
		httpx.WriteError(w, http.StatusInternalServerError, msg)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleRefundStatus handles GET /api/users/refund-status
//
//	@Summary		Refund status overview
//	@Description	Latest refund status of every user. Users whose files cannot be listed are NO_REFUND; users whose lookup failed outright are ERROR.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	domain.RefundStatusList
//	@Failure		500	{object}	httpx.ErrorBody	"record service failure"
//	@Router			/api/users/refund-status [get].
func (h *UsersHandler) HandleRefundStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.RefundStatusService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgInternal, "Failed to fetch refund statuses")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
