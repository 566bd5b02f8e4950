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

type FollowUpsHandler struct {
	FollowUpService *service.FollowUpService
	Resolver        *PrincipalResolver
}

// HandleCreate godoc
//
//	@Summary		Follow-up Scheduling Endpoint
//	@Description	Schedule a follow-up reminder for a patient.
//	@Tags			FollowUps
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.FollowUpRequest	true	"Follow-up details"
//	@Success		201		{object}	clinicsdk.FollowUpResponse	"followup_id"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/followups [post].
func (h *FollowUpsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	var req clinicsdk.FollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	var dueAt time.Time
	if req.DueAt != 0 {
		dueAt = time.Unix(req.DueAt, 0).UTC()
	}

	f, err := h.FollowUpService.ScheduleFollowUp(ctx, principal, service.ScheduleFollowUpParams{
		PatientID: req.PatientID,
		VisitID:   req.VisitID,
		DueAt:     dueAt,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Patient not found")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "patient_id and due_at are required")
		default:
			log.Error("failed to schedule follow-up", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to schedule follow-up")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, followUpResponse(f))
}

// HandleListDue godoc
//
//	@Summary		Due Follow-ups Endpoint
//	@Description	List the clinic's pending and overdue follow-ups due now or earlier, oldest
//	@Description	first.
//	@Tags			FollowUps
//	@Produce		json
//	@Success		200	{object}	clinicsdk.FollowUpsResponse	"followups"
//	@Failure		403	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/followups/due [get].
func (h *FollowUpsHandler) HandleListDue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	due, err := h.FollowUpService.ListDue(ctx, principal)
	if err != nil {
		log.Error("failed to list due follow-ups", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list follow-ups")
		return
	}

	resp := clinicsdk.FollowUpsResponse{FollowUps: make([]clinicsdk.FollowUpResponse, 0, len(due))}
	for _, f := range due {
		resp.FollowUps = append(resp.FollowUps, followUpResponse(f))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleComplete godoc
//
//	@Summary		Follow-up Completion Endpoint
//	@Description	Mark a pending or overdue follow-up as done.
//	@Tags			FollowUps
//	@Produce		json
//	@Param			id	path	string	true	"Follow-up ID"
//	@Success		204	"follow-up completed"
//	@Failure		404	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/followups/{id}/complete [post].
func (h *FollowUpsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	err := h.FollowUpService.Complete(ctx, principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrFollowUpNotFound) {
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Follow-up not found or not completable")
			return
		}
		log.Error("failed to complete follow-up", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to complete follow-up")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
