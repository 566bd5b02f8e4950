package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/idx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

var ErrAppointmentNotFound = errors.New("appointment not found or not cancellable")

// AppointmentService schedules and cancels appointments.
type AppointmentService struct {
	Store store.Store
}

type ScheduleAppointmentParams struct {
	PatientID    string
	ScheduledAt  time.Time
	DurationMins int
	Reason       string
}

// ScheduleAppointment books a slot for a patient with the acting
// doctor.
func (s *AppointmentService) ScheduleAppointment(
	ctx context.Context,
	p domain.Principal,
	params ScheduleAppointmentParams,
) (domain.Appointment, error) {
	log := slogx.FromContext(ctx)

	if params.PatientID == "" || params.ScheduledAt.IsZero() {
		log.Warn("appointment schedule missing required fields")
		return domain.Appointment{}, ErrInvalidRequest
	}
	if params.DurationMins <= 0 {
		params.DurationMins = 15
	}

	if _, err := s.Store.Patients().GetPatient(ctx, p.ClinicID, params.PatientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, ErrPatientNotFound
		}
		log.Error("failed to fetch patient", slog.Any("error", err))
		return domain.Appointment{}, err
	}

	now := time.Now().UTC()
	appt := domain.Appointment{
		ID:           idx.New().String(),
		ClinicID:     p.ClinicID,
		PatientID:    params.PatientID,
		DoctorID:     p.UserID,
		ScheduledAt:  params.ScheduledAt.UTC(),
		DurationMins: params.DurationMins,
		Reason:       params.Reason,
		Status:       domain.AppointmentScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Appointments().CreateAppointment(ctx, appt); err != nil {
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditAppointmentScheduled,
			SubjectKind: "appointment",
			SubjectID:   appt.ID,
			Detail:      params.PatientID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to schedule appointment",
			slog.String("patient_id", params.PatientID),
			slog.Any("error", err),
		)
		return domain.Appointment{}, err
	}

	log.Info("appointment scheduled",
		slog.String("appointment_id", appt.ID),
		slog.String("patient_id", params.PatientID),
		slog.Time("scheduled_at", appt.ScheduledAt),
	)
	return appt, nil
}

// ListForDay returns the clinic's appointments on the given calendar
// day, soonest first. The day is interpreted in UTC.
func (s *AppointmentService) ListForDay(
	ctx context.Context,
	p domain.Principal,
	day time.Time,
) ([]domain.Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	return s.Store.Appointments().ListBetween(ctx, p.ClinicID, from, to)
}

// Cancel marks a scheduled appointment cancelled. The store's
// conditional update is the arbiter: completed or already-cancelled
// rows report ErrAppointmentNotFound.
func (s *AppointmentService) Cancel(
	ctx context.Context,
	p domain.Principal,
	appointmentID string,
) error {
	log := slogx.FromContext(ctx)

	now := time.Now().UTC()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Appointments().Cancel(ctx, p.ClinicID, appointmentID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditAppointmentCancelled,
			SubjectKind: "appointment",
			SubjectID:   appointmentID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		log.Error("failed to cancel appointment",
			slog.String("appointment_id", appointmentID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("appointment cancelled",
		slog.String("appointment_id", appointmentID),
		slog.String("actor_id", p.UserID),
	)
	return nil
}
