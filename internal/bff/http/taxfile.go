package http

import (
	"net/http"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
)

// TaxFileHandler forwards tax file creation.
type TaxFileHandler struct {
	TaxFileService *service.TaxFileService
}

// ServeHTTP handles POST /api/tax-file
//
//	@Summary		Create tax file
//	@Description	Validates a tax file and forwards it unchanged to the record service. taxRate is a fraction between 0 and 1; amounts must not be negative.
//	@Tags			Tax files
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.TaxFileInput	true	"Tax file"
//	@Success		200		{object}	TaxFileResponse
//	@Failure		400		{object}	httpx.ErrorBody	"missing or invalid fields"
//	@Failure		500		{object}	httpx.ErrorBody	"record service failure"
//	@Router			/api/tax-file [post].
func (h *TaxFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in service.TaxFileInput
	if !decodeBody(w, r, &in) {
		return
	}

	file, err := h.TaxFileService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, msgInternal, "Failed to create tax file")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TaxFileResponse{Success: true, Data: *file})
}
