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

type AppointmentsHandler struct {
	AppointmentService *service.AppointmentService
	Resolver           *PrincipalResolver
}

// HandleCreate godoc
//
//	@Summary		Appointment Scheduling Endpoint
//	@Description	Book an appointment for a patient with the calling doctor.
//	@Tags			Appointments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.AppointmentRequest	true	"Appointment details"
//	@Success		201		{object}	clinicsdk.AppointmentResponse	"appointment_id"
//	@Failure		400		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/appointments [post].
func (h *AppointmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	var req clinicsdk.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	var scheduledAt time.Time
	if req.ScheduledAt != 0 {
		scheduledAt = time.Unix(req.ScheduledAt, 0).UTC()
	}

	appt, err := h.AppointmentService.ScheduleAppointment(ctx, principal, service.ScheduleAppointmentParams{
		PatientID:    req.PatientID,
		ScheduledAt:  scheduledAt,
		DurationMins: req.DurationMins,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Patient not found")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "patient_id and scheduled_at are required")
		default:
			log.Error("failed to schedule appointment", "err", err)
			writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to schedule appointment")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, appointmentResponse(appt))
}

// HandleList godoc
//
//	@Summary		Appointment Day List Endpoint
//	@Description	List the clinic's appointments on a calendar day (UTC). The day query
//	@Description	parameter uses the 2006-01-02 layout and defaults to today.
//	@Tags			Appointments
//	@Produce		json
//	@Param			day	query		string							false	"Day (YYYY-MM-DD)"
//	@Success		200	{object}	clinicsdk.AppointmentsResponse	"appointments"
//	@Failure		400	{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/appointments [get].
func (h *AppointmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if q := r.URL.Query().Get("day"); q != "" {
		parsed, err := time.ParseInLocation(dateLayout, q, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "day must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	appts, err := h.AppointmentService.ListForDay(ctx, principal, day)
	if err != nil {
		log.Error("failed to list appointments", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list appointments")
		return
	}

	resp := clinicsdk.AppointmentsResponse{Appointments: make([]clinicsdk.AppointmentResponse, 0, len(appts))}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, appointmentResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCancel godoc
//
//	@Summary		Appointment Cancellation Endpoint
//	@Description	Cancel a scheduled appointment. Completed or already-cancelled appointments
//	@Description	report not found.
//	@Tags			Appointments
//	@Produce		json
//	@Param			id	path	string	true	"Appointment ID"
//	@Success		204	"appointment cancelled"
//	@Failure		404	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/appointments/{id}/cancel [post].
func (h *AppointmentsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	err := h.AppointmentService.Cancel(ctx, principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Appointment not found or not cancellable")
			return
		}
		log.Error("failed to cancel appointment", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to cancel appointment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
