package service

import (
	"context"
	"testing"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func seedPatient(t *testing.T, svc *PatientService, clinicID string) domain.Patient {
	t.Helper()

	p, err := svc.RegisterPatient(context.Background(), testPrincipal(clinicID, domain.RoleDoctor), RegisterPatientParams{
		GivenName: "Ada", FamilyName: "Lovelace",
		DateOfBirth: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return p
}

func TestFollowUpLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	patients := &PatientService{Store: st}
	svc := &FollowUpService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)
	principal := testPrincipal(clinic.ID, domain.RoleDoctor)
	patient := seedPatient(t, patients, clinic.ID)

	t.Run("schedule and complete", func(t *testing.T) {
		f, err := svc.ScheduleFollowUp(ctx, principal, ScheduleFollowUpParams{
			PatientID: patient.ID,
			DueAt:     time.Now().AddDate(0, 0, 14),
			Notes:     "review bloodwork",
		})
		require.NoError(t, err)
		require.Equal(t, domain.FollowUpPending, f.Status)

		require.NoError(t, svc.Complete(ctx, principal, f.ID))

		// Completing twice fails: the conditional update finds no row.
		require.ErrorIs(t, svc.Complete(ctx, principal, f.ID), ErrFollowUpNotFound)
	})

	t.Run("unknown patient rejected", func(t *testing.T) {
		_, err := svc.ScheduleFollowUp(ctx, principal, ScheduleFollowUpParams{
			PatientID: "missing",
			DueAt:     time.Now().AddDate(0, 0, 1),
		})
		require.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestSweepOverdue(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	patients := &PatientService{Store: st}
	svc := &FollowUpService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)
	principal := testPrincipal(clinic.ID, domain.RoleDoctor)
	patient := seedPatient(t, patients, clinic.ID)

	// One already past due, one comfortably in the future.
	past, err := svc.ScheduleFollowUp(ctx, principal, ScheduleFollowUpParams{
		PatientID: patient.ID,
		DueAt:     time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.ScheduleFollowUp(ctx, principal, ScheduleFollowUpParams{
		PatientID: patient.ID,
		DueAt:     time.Now().AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	marked, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, marked)

	// A second sweep finds nothing new.
	marked, err = svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, marked)

	due, err := svc.ListDue(ctx, principal)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, past.ID, due[0].ID)
	require.Equal(t, domain.FollowUpOverdue, due[0].Status)

	// Overdue follow-ups still complete.
	require.NoError(t, svc.Complete(ctx, principal, past.ID))

	// The future one is untouched.
	count, err := st.FollowUps().CountOverdue(ctx, clinic.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}
