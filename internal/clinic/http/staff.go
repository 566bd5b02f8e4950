package http

import (
	"errors"
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type StaffHandler struct {
	MembershipService *service.MembershipService
	Resolver          *PrincipalResolver
}

// HandleList godoc
//
//	@Summary		Staff List Endpoint
//	@Description	List the clinic's staff memberships, active and retired. Admin only.
//	@Tags			Staff
//	@Produce		json
//	@Success		200	{object}	clinicsdk.StaffResponse	"staff"
//	@Failure		403	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/staff [get].
func (h *StaffHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	staff, err := h.MembershipService.ListStaff(ctx, principal)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Only clinic admins can list staff")
			return
		}
		log.Error("failed to list staff", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list staff")
		return
	}

	resp := clinicsdk.StaffResponse{Staff: make([]clinicsdk.MembershipResponse, 0, len(staff))}
	for _, m := range staff {
		resp.Staff = append(resp.Staff, membershipResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDeactivate godoc
//
//	@Summary		Staff Deactivation Endpoint
//	@Description	Retire a staff membership. Admin only; admins cannot deactivate themselves.
//	@Tags			Staff
//	@Produce		json
//	@Param			id	path	string	true	"Membership ID"
//	@Success		204	"membership deactivated"
//	@Failure		403	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/staff/{id}/deactivate [post].
func (h *StaffHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	err := h.MembershipService.Deactivate(ctx, principal, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Only clinic admins can deactivate staff")
		case errors.Is(err, service.ErrCannotDeactivateSelf):
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "You cannot deactivate your own membership")
		case errors.Is(err, service.ErrMembershipNotFound):
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Membership not found")
		default:
			log.Error("failed to deactivate membership", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to deactivate membership")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
