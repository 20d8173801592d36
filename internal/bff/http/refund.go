package http

import (
	"net/http"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

// RefundHandler proxies refund lookups and lifecycle events.
type RefundHandler struct {
	RefundService *service.RefundService
}

// HandleGet handles GET /api/refund
//
//	@Summary		Refund lookup
//	@Description	Looks a refund up by fileId, or by userId and year.
//	@Tags			Refunds
//	@Produce		json
//	@Param			fileId	query		string	false	"Tax file id"
//	@Param			userId	query		string	false	"User id"
//	@Param			year	query		int		false	"Tax year"
//	@Success		200		{object}	RefundResponse
//	@Failure		400		{object}	httpx.ErrorBody	"missing or malformed query"
//	@Failure		404		{object}	httpx.ErrorBody	"refund not found"
//	@Failure		500		{object}	httpx.ErrorBody	"internal error"
//	@Router			/api/refund [get].
func (h *RefundHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query, err := service.ParseRefundQuery(q.Get("fileId"), q.Get("userId"), q.Get("year"))
	if err != nil {
		writeServiceError(w, r, err, "Refund not found", msgInternal)
		return
	}

	refund, err := h.RefundService.Get(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, "Refund not found", msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RefundResponse{Success: true, Data: *refund})
}

// HandleEvent handles POST /api/refund-event
//
//	@Summary		Submit refund event
//	@Description	Forwards a refund lifecycle event. An eventId is generated when omitted.
//	@Tags			Refunds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taxsdk.RefundEvent	true	"Refund event"
//	@Success		202		{object}	RefundEventResponse
//	@Failure		400		{object}	httpx.ErrorBody	"missing or unknown fields"
//	@Failure		404		{object}	httpx.ErrorBody	"tax file not found"
//	@Failure		500		{object}	httpx.ErrorBody	"internal error"
//	@Router			/api/refund-event [post].
func (h *RefundHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event taxsdk.RefundEvent
	if !decodeBody(w, r, &event) {
		return
	}

	id, err := h.RefundService.ProcessEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, r, err, "Tax file not found", "Failed to process refund event")
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, RefundEventResponse{Success: true, EventID: id})
}
