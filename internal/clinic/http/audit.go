package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type AuditHandler struct {
	AuditService *service.AuditService
	Resolver     *PrincipalResolver
}

// ServeHTTP godoc
//
//	@Summary		Audit Trail Endpoint
//	@Description	List the clinic's audit entries, newest first. Admin only.
//	@Tags			Audit
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum entries to return (default 100)"
//	@Success		200		{object}	clinicsdk.AuditResponse	"entries"
//	@Failure		403		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/audit [get].
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		limit, _ = strconv.Atoi(q)
	}

	entries, err := h.AuditService.List(ctx, principal, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			writeError(w, http.StatusForbidden, clinicsdk.ErrorCodeForbidden, "Only clinic admins can read the audit trail")
			return
		}
		log.Error("failed to list audit entries", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list audit entries")
		return
	}

	resp := clinicsdk.AuditResponse{Entries: make([]clinicsdk.AuditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, auditEntryResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
