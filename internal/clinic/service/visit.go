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

// VisitService records and lists patient visits.
type VisitService struct {
	Store store.Store
}

type RecordVisitParams struct {
	PatientID  string
	Reason     string
	Diagnosis  string
	Notes      string
	OccurredAt time.Time // zero means now
}

// RecordVisit writes a visit for a patient in the principal's clinic.
// The acting user is recorded as the doctor.
func (s *VisitService) RecordVisit(
	ctx context.Context,
	p domain.Principal,
	params RecordVisitParams,
) (domain.Visit, error) {
	log := slogx.FromContext(ctx)

	if params.PatientID == "" || params.Reason == "" {
		log.Warn("visit record missing required fields")
		return domain.Visit{}, ErrInvalidRequest
	}

	// The patient must exist in this clinic.
	if _, err := s.Store.Patients().GetPatient(ctx, p.ClinicID, params.PatientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Visit{}, ErrPatientNotFound
		}
		log.Error("failed to fetch patient", slog.Any("error", err))
		return domain.Visit{}, err
	}

	now := time.Now().UTC()
	occurredAt := params.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	visit := domain.Visit{
		ID:         idx.New().String(),
		ClinicID:   p.ClinicID,
		PatientID:  params.PatientID,
		DoctorID:   p.UserID,
		Reason:     params.Reason,
		Diagnosis:  params.Diagnosis,
		Notes:      params.Notes,
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Visits().CreateVisit(ctx, visit); err != nil {
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditVisitRecorded,
			SubjectKind: "visit",
			SubjectID:   visit.ID,
			Detail:      params.PatientID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to record visit",
			slog.String("patient_id", params.PatientID),
			slog.Any("error", err),
		)
		return domain.Visit{}, err
	}

	log.Info("visit recorded",
		slog.String("visit_id", visit.ID),
		slog.String("patient_id", params.PatientID),
		slog.String("doctor_id", p.UserID),
	)
	return visit, nil
}

// ListVisits returns a patient's visits, most recent first.
func (s *VisitService) ListVisits(
	ctx context.Context,
	p domain.Principal,
	patientID string,
) ([]domain.Visit, error) {
	// Scope to the clinic before listing so unknown patients read as
	// not found rather than as an empty history.
	if _, err := s.Store.Patients().GetPatient(ctx, p.ClinicID, patientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return s.Store.Visits().ListByPatient(ctx, p.ClinicID, patientID)
}
