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

var ErrFollowUpNotFound = errors.New("follow-up not found or not completable")

// FollowUpService schedules patient follow-ups and sweeps the ones
// that went overdue.
type FollowUpService struct {
	Store store.Store
}

type ScheduleFollowUpParams struct {
	PatientID string
	VisitID   string // optional
	DueAt     time.Time
	Notes     string
}

// ScheduleFollowUp creates a pending follow-up for a patient.
func (s *FollowUpService) ScheduleFollowUp(
	ctx context.Context,
	p domain.Principal,
	params ScheduleFollowUpParams,
) (domain.FollowUp, error) {
	log := slogx.FromContext(ctx)

	if params.PatientID == "" || params.DueAt.IsZero() {
		log.Warn("follow-up schedule missing required fields")
		return domain.FollowUp{}, ErrInvalidRequest
	}

	if _, err := s.Store.Patients().GetPatient(ctx, p.ClinicID, params.PatientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.FollowUp{}, ErrPatientNotFound
		}
		log.Error("failed to fetch patient", slog.Any("error", err))
		return domain.FollowUp{}, err
	}

	now := time.Now().UTC()
	f := domain.FollowUp{
		ID:        idx.New().String(),
		ClinicID:  p.ClinicID,
		PatientID: params.PatientID,
		VisitID:   params.VisitID,
		DoctorID:  p.UserID,
		DueAt:     params.DueAt.UTC(),
		Notes:     params.Notes,
		Status:    domain.FollowUpPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.FollowUps().CreateFollowUp(ctx, f); err != nil {
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditFollowUpScheduled,
			SubjectKind: "follow_up",
			SubjectID:   f.ID,
			Detail:      params.PatientID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to schedule follow-up",
			slog.String("patient_id", params.PatientID),
			slog.Any("error", err),
		)
		return domain.FollowUp{}, err
	}

	log.Info("follow-up scheduled",
		slog.String("followup_id", f.ID),
		slog.String("patient_id", params.PatientID),
		slog.Time("due_at", f.DueAt),
	)
	return f, nil
}

// Complete marks a pending or overdue follow-up done. Anything else is
// ErrFollowUpNotFound, decided by the store's conditional update.
func (s *FollowUpService) Complete(
	ctx context.Context,
	p domain.Principal,
	followUpID string,
) error {
	log := slogx.FromContext(ctx)

	now := time.Now().UTC()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.FollowUps().Complete(ctx, p.ClinicID, followUpID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrFollowUpNotFound
			}
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditFollowUpCompleted,
			SubjectKind: "follow_up",
			SubjectID:   followUpID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrFollowUpNotFound) {
			return err
		}
		log.Error("failed to complete follow-up",
			slog.String("followup_id", followUpID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("follow-up completed",
		slog.String("followup_id", followUpID),
		slog.String("actor_id", p.UserID),
	)
	return nil
}

// ListDue returns the clinic's pending and overdue follow-ups due at or
// before now, oldest first.
func (s *FollowUpService) ListDue(
	ctx context.Context,
	p domain.Principal,
) ([]domain.FollowUp, error) {
	return s.Store.FollowUps().ListDue(ctx, p.ClinicID, time.Now().UTC())
}

// SweepOverdue flips every pending follow-up past its due date to
// overdue across all clinics in one statement. The housekeeping worker
// calls this on a timer.
func (s *FollowUpService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.Store.FollowUps().MarkOverdue(ctx, time.Now().UTC())
}
