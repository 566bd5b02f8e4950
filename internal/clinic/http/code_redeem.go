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

type CodeRedeemHandler struct {
	OnboardingService *service.OnboardingService
}

// ServeHTTP godoc
//
//	@Summary		Registration Code Redemption Endpoint
//	@Description	Redeem a doctor registration code, joining the caller to the clinic it was
//	@Description	minted for. Codes are single use; invalid and already-used codes are
//	@Description	indistinguishable by design.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.RedeemCodeRequest	true	"Redeem request"
//	@Success		200		{object}	clinicsdk.JoinResponse		"membership_id, clinic_id, clinic_name, role"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		410		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/codes/redeem [post].
func (h *CodeRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized, "Authentication required")
		return
	}

	var req clinicsdk.RedeemCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	res, err := h.OnboardingService.RedeemCode(ctx, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode), errors.Is(err, service.ErrCodeNotBound):
			// Not-bound is a data corruption case, but to the caller it
			// is just a code that does not work.
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidCode, "Code is invalid or has already been used")
		case errors.Is(err, service.ErrCodeExpired):
			writeError(w, http.StatusGone, clinicsdk.ErrorCodeCodeExpired, "Code has expired; ask your clinic for a new one")
		case errors.Is(err, service.ErrAlreadyMember):
			writeError(w, http.StatusConflict, clinicsdk.ErrorCodeAlreadyMember, "You already belong to a clinic")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "code is required")
		default:
			log.Error("failed to redeem code", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to redeem code")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, joinResponse(res))
}
