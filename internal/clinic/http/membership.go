package http

import (
	"errors"
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type MembershipHandler struct {
	OnboardingService *service.OnboardingService
}

// ServeHTTP godoc
//
//	@Summary		Current Membership Endpoint
//	@Description	Return the caller's active clinic membership. Clients call this first to
//	@Description	decide whether to show the onboarding flow or the clinic workspace.
//	@Tags			Onboarding
//	@Produce		json
//	@Success		200	{object}	clinicsdk.MembershipResponse	"membership_id, clinic_id, role"
//	@Failure		404	{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/membership [get].
func (h *MembershipHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized, "Authentication required")
		return
	}

	m, err := h.OnboardingService.ActiveMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoMembership) {
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNoMembership, "You do not belong to a clinic")
			return
		}
		log.Error("failed to fetch membership", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to fetch membership")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, membershipResponse(m))
}
