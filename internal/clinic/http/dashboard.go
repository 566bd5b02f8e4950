package http

import (
	"net/http"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
	Resolver         *PrincipalResolver
}

// ServeHTTP godoc
//
//	@Summary		Dashboard Endpoint
//	@Description	Return the clinic's summary counts: patients, visits in the last seven days,
//	@Description	overdue follow-ups and upcoming appointments.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	clinicsdk.DashboardResponse	"counts"
//	@Failure		403	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	counts, err := h.DashboardService.Counts(ctx, principal)
	if err != nil {
		log.Error("failed to compute dashboard counts", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to compute dashboard")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.DashboardResponse{
		Patients:             counts.Patients,
		VisitsLast7Days:      counts.VisitsLast7Days,
		OverdueFollowUps:     counts.OverdueFollowUps,
		UpcomingAppointments: counts.UpcomingAppointments,
	})
}
