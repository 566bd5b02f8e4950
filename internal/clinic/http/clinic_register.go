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

type ClinicRegisterHandler struct {
	OnboardingService *service.OnboardingService
}

// ServeHTTP godoc
//
//	@Summary		Clinic Registration Endpoint
//	@Description	Found a new clinic from a clinic-type registration code. The caller becomes
//	@Description	the clinic's admin.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.RegisterClinicRequest	true	"Registration request"
//	@Success		200		{object}	clinicsdk.JoinResponse			"membership_id, clinic_id, clinic_name, role"
//	@Failure		400		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinics/register [post].
func (h *ClinicRegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized, "Authentication required")
		return
	}

	var req clinicsdk.RegisterClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	res, err := h.OnboardingService.RegisterClinic(ctx, userID, req.Code, req.ClinicName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidCode, "Code is invalid or has already been used")
		case errors.Is(err, service.ErrCodeExpired):
			writeError(w, http.StatusGone, clinicsdk.ErrorCodeCodeExpired, "Code has expired")
		case errors.Is(err, service.ErrAlreadyMember):
			writeError(w, http.StatusConflict, clinicsdk.ErrorCodeAlreadyMember, "You already belong to a clinic")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "code and clinic_name are required")
		default:
			log.Error("failed to register clinic", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to register clinic")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, joinResponse(res))
}
