package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type ClinicHandler struct {
	ClinicService *service.ClinicService
	Resolver      *PrincipalResolver
}

// HandleGet godoc
//
//	@Summary		Current Clinic Endpoint
//	@Description	Return the clinic the caller belongs to.
//	@Tags			Clinic
//	@Produce		json
//	@Success		200	{object}	clinicsdk.ClinicResponse	"clinic_id, name, status"
//	@Failure		403	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinic [get].
func (h *ClinicHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	clinic, err := h.ClinicService.CurrentClinic(ctx, principal)
	if err != nil {
		log.Error("failed to fetch clinic", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to fetch clinic")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicResponse(clinic))
}

// HandleSetStatus godoc
//
//	@Summary		Clinic Status Endpoint
//	@Description	Set the clinic status to active, suspended or inactive. Admin only. Suspended
//	@Description	clinics keep their staff but cannot issue new doctor codes.
//	@Tags			Clinic
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.ClinicStatusRequest	true	"Status request"
//	@Success		200		{object}	clinicsdk.ClinicResponse		"clinic_id, name, status"
//	@Failure		400		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinic/status [post].
func (h *ClinicHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	var req clinicsdk.ClinicStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	clinic, err := h.ClinicService.SetStatus(ctx, principal, domain.ClinicStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Only clinic admins can change the status")
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "status must be active, suspended or inactive")
		default:
			log.Error("failed to set clinic status", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to set clinic status")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicResponse(clinic))
}
