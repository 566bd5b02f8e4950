package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/idx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientService registers and reads patients. Every operation is
// scoped to the principal's clinic.
type PatientService struct {
	Store store.Store
}

// RegisterPatientParams carries the registration form fields. The MRN
// is never supplied by the caller; it is allocated here.
type RegisterPatientParams struct {
	GivenName   string
	FamilyName  string
	DateOfBirth time.Time
	Sex         string
	Phone       string
}

// RegisterPatient allocates the next per-clinic MRN and inserts the
// patient in one transaction. The unique (clinic_id, mrn_seq) index
// backstops two concurrent registrations drawing the same number.
func (s *PatientService) RegisterPatient(
	ctx context.Context,
	p domain.Principal,
	params RegisterPatientParams,
) (domain.Patient, error) {
	log := slogx.FromContext(ctx)

	if params.GivenName == "" || params.FamilyName == "" || params.DateOfBirth.IsZero() {
		log.Warn("patient registration missing required fields")
		return domain.Patient{}, ErrInvalidRequest
	}
	now := time.Now().UTC()
	if params.DateOfBirth.After(now) {
		log.Warn("patient registration with future date of birth")
		return domain.Patient{}, ErrInvalidRequest
	}

	var patient domain.Patient
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		seq, err := tx.Patients().NextMRNSeq(ctx, p.ClinicID)
		if err != nil {
			return err
		}

		patient = domain.Patient{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			MRN:         fmt.Sprintf("MRN-%06d", seq),
			MRNSeq:      seq,
			GivenName:   params.GivenName,
			FamilyName:  params.FamilyName,
			DateOfBirth: params.DateOfBirth,
			Sex:         params.Sex,
			Phone:       params.Phone,
			CreatedBy:   p.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Patients().CreatePatient(ctx, patient); err != nil {
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditPatientRegistered,
			SubjectKind: "patient",
			SubjectID:   patient.ID,
			Detail:      patient.MRN,
			CreatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to register patient",
			slog.String("clinic_id", p.ClinicID),
			slog.Any("error", err),
		)
		return domain.Patient{}, err
	}

	log.Info("patient registered",
		slog.String("patient_id", patient.ID),
		slog.String("mrn", patient.MRN),
		slog.String("clinic_id", p.ClinicID),
	)
	return patient, nil
}

// GetPatient returns a patient in the principal's clinic.
func (s *PatientService) GetPatient(
	ctx context.Context,
	p domain.Principal,
	patientID string,
) (domain.Patient, error) {
	patient, err := s.Store.Patients().GetPatient(ctx, p.ClinicID, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Patient{}, ErrPatientNotFound
		}
		return domain.Patient{}, err
	}
	return patient, nil
}

// ListPatients returns the clinic's patients, newest first.
func (s *PatientService) ListPatients(
	ctx context.Context,
	p domain.Principal,
) ([]domain.Patient, error) {
	return s.Store.Patients().ListPatients(ctx, p.ClinicID)
}
