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

type CodeIssueHandler struct {
	OnboardingService *service.OnboardingService
	Resolver          *PrincipalResolver
}

// ServeHTTP godoc
//
//	@Summary		Registration Code Issuance Endpoint
//	@Description	Mint a registration code. Doctor codes are bound to the caller's clinic;
//	@Description	clinic codes are unbound and found a new clinic when redeemed. Admin only;
//	@Description	the code value is returned exactly once and cannot be retrieved again.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.IssueCodeRequest	true	"Issue request"
//	@Success		200		{object}	clinicsdk.CodeResponse		"code_id, code, type, clinic_id, expires_at"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/codes/issue [post].
func (h *CodeIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}
	if !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Only clinic admins can issue codes")
		return
	}

	var req clinicsdk.IssueCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	// Doctor codes are always bound to the caller's own clinic. Clinic
	// codes are unbound; the redeeming founder names the new clinic.
	var (
		codeType domain.CodeType
		clinicID string
	)
	switch req.Type {
	case string(domain.CodeTypeDoctor):
		codeType = domain.CodeTypeDoctor
		clinicID = principal.ClinicID
	case string(domain.CodeTypeClinic):
		codeType = domain.CodeTypeClinic
	default:
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "type must be \"clinic\" or \"doctor\"")
		return
	}

	code, err := h.OnboardingService.IssueCode(
		ctx,
		codeType,
		clinicID,
		req.ExpiryDays,
		principal.UserID,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClinic):
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Clinic is not active")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid issue parameters")
		default:
			log.Error("failed to issue code", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to issue code")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, codeResponse(code))
}
