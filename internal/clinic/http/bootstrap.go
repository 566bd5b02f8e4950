package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		System Bootstrap Endpoint
//	@Description	Mint the founding clinic registration code on an empty system. Guarded by the
//	@Description	pre-configured bootstrap token; refused once any clinic exists.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.BootstrapRequest	true	"Bootstrap request"
//	@Success		200		{object}	clinicsdk.CodeResponse		"code_id, code, type, expires_at"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	code, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.ExpiryDays)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			writeError(w, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized, "Invalid bootstrap token")
		case errors.Is(err, service.ErrBootstrapAlready):
			writeError(w, http.StatusConflict, clinicsdk.ErrorCodeAlreadyBootstrap, "System already has clinics")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid bootstrap parameters")
		default:
			log.Error("bootstrap failed", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Bootstrap failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, codeResponse(code))
}
