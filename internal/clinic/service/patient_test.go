package service

import (
	"context"
	"testing"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func testPrincipal(clinicID string, role domain.Role) domain.Principal {
	return domain.Principal{UserID: "user-1", ClinicID: clinicID, Role: role}
}

func TestRegisterPatient(t *testing.T) {
	ctx := context.Background()
	dob := time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC)

	t.Run("allocates sequential MRNs per clinic", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PatientService{Store: st}
		clinicA := seedClinic(t, st, domain.ClinicActive)
		clinicB := seedClinic(t, st, domain.ClinicActive)

		first, err := svc.RegisterPatient(ctx, testPrincipal(clinicA.ID, domain.RoleDoctor), RegisterPatientParams{
			GivenName: "Ada", FamilyName: "Lovelace", DateOfBirth: dob,
		})
		require.NoError(t, err)
		require.Equal(t, "MRN-000001", first.MRN)

		second, err := svc.RegisterPatient(ctx, testPrincipal(clinicA.ID, domain.RoleDoctor), RegisterPatientParams{
			GivenName: "Grace", FamilyName: "Hopper", DateOfBirth: dob,
		})
		require.NoError(t, err)
		require.Equal(t, "MRN-000002", second.MRN)

		// Sequences are per clinic, not global.
		other, err := svc.RegisterPatient(ctx, testPrincipal(clinicB.ID, domain.RoleDoctor), RegisterPatientParams{
			GivenName: "Alan", FamilyName: "Turing", DateOfBirth: dob,
		})
		require.NoError(t, err)
		require.Equal(t, "MRN-000001", other.MRN)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PatientService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		_, err := svc.RegisterPatient(ctx, testPrincipal(clinic.ID, domain.RoleDoctor), RegisterPatientParams{
			GivenName: "Ada",
		})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("future date of birth rejected", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PatientService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		_, err := svc.RegisterPatient(ctx, testPrincipal(clinic.ID, domain.RoleDoctor), RegisterPatientParams{
			GivenName: "Ada", FamilyName: "Lovelace",
			DateOfBirth: time.Now().AddDate(1, 0, 0),
		})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestGetPatientIsClinicScoped(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PatientService{Store: st}
	clinicA := seedClinic(t, st, domain.ClinicActive)
	clinicB := seedClinic(t, st, domain.ClinicActive)

	p, err := svc.RegisterPatient(ctx, testPrincipal(clinicA.ID, domain.RoleDoctor), RegisterPatientParams{
		GivenName: "Ada", FamilyName: "Lovelace",
		DateOfBirth: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := svc.GetPatient(ctx, testPrincipal(clinicA.ID, domain.RoleDoctor), p.ID)
	require.NoError(t, err)
	require.Equal(t, p.MRN, got.MRN)

	// Another clinic cannot see the patient.
	_, err = svc.GetPatient(ctx, testPrincipal(clinicB.ID, domain.RoleDoctor), p.ID)
	require.ErrorIs(t, err, ErrPatientNotFound)
}
