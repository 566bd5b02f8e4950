package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type VisitsHandler struct {
	VisitService *service.VisitService
	Resolver     *PrincipalResolver
}

// HandleCreate godoc
//
//	@Summary		Visit Recording Endpoint
//	@Description	Record a visit for a patient. The caller is recorded as the treating doctor.
//	@Tags			Visits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Patient ID"
//	@Param			request	body		clinicsdk.VisitRequest	true	"Visit details"
//	@Success		201		{object}	clinicsdk.VisitResponse	"visit_id"
//	@Failure		400		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/patients/{id}/visits [post].
func (h *VisitsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	var req clinicsdk.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != 0 {
		occurredAt = time.Unix(req.OccurredAt, 0).UTC()
	}

	visit, err := h.VisitService.RecordVisit(ctx, principal, service.RecordVisitParams{
		PatientID:  r.PathValue("id"),
		Reason:     req.Reason,
		Diagnosis:  req.Diagnosis,
		Notes:      req.Notes,
		OccurredAt: occurredAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Patient not found")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "reason is required")
		default:
			log.Error("failed to record visit", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to record visit")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, visitResponse(visit))
}

// HandleList godoc
//
//	@Summary		Visit History Endpoint
//	@Description	List a patient's visits, most recent first.
//	@Tags			Visits
//	@Produce		json
//	@Param			id	path		string					true	"Patient ID"
//	@Success		200	{object}	clinicsdk.VisitsResponse	"visits"
//	@Failure		404	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/patients/{id}/visits [get].
func (h *VisitsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	visits, err := h.VisitService.ListVisits(ctx, principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Patient not found")
			return
		}
		log.Error("failed to list visits", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list visits")
		return
	}

	resp := clinicsdk.VisitsResponse{Visits: make([]clinicsdk.VisitResponse, 0, len(visits))}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, visitResponse(v))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
