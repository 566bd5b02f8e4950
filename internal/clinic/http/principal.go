package http

import (
	"errors"
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

// PrincipalResolver turns the authenticated user id into the
// per-request tenancy context. The JWT proves identity; the membership
// row decides which clinic and role the caller acts as.
type PrincipalResolver struct {
	Onboarding *service.OnboardingService
}

// Resolve returns the caller's Principal, writing the error response
// itself when the caller is unauthenticated or has no active
// membership. The second return is false when a response was written.
func (pr *PrincipalResolver) Resolve(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized, "Authentication required")
		return domain.Principal{}, false
	}

	m, err := pr.Onboarding.ActiveMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoMembership) {
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeNoMembership, "You do not belong to a clinic")
			return domain.Principal{}, false
		}
		slogx.FromContext(ctx).Error("failed to resolve membership", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to resolve membership")
		return domain.Principal{}, false
	}

	return domain.Principal{UserID: userID, ClinicID: m.ClinicID, Role: m.Role}, true
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, clinicsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}
