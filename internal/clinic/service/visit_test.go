package service

import (
	"context"
	"testing"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func TestVisits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	patients := &PatientService{Store: st}
	svc := &VisitService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)
	principal := testPrincipal(clinic.ID, domain.RoleDoctor)
	patient := seedPatient(t, patients, clinic.ID)

	t.Run("record and list", func(t *testing.T) {
		v, err := svc.RecordVisit(ctx, principal, RecordVisitParams{
			PatientID: patient.ID,
			Reason:    "persistent cough",
			Diagnosis: "bronchitis",
			Notes:     "amoxicillin 500mg",
		})
		require.NoError(t, err)
		require.Equal(t, principal.UserID, v.DoctorID)
		require.False(t, v.OccurredAt.IsZero())

		listed, err := svc.ListVisits(ctx, principal, patient.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		require.Equal(t, "bronchitis", listed[0].Diagnosis)
	})

	t.Run("reason is required", func(t *testing.T) {
		_, err := svc.RecordVisit(ctx, principal, RecordVisitParams{PatientID: patient.ID})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := svc.ListVisits(ctx, principal, "missing")
		require.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	patients := &PatientService{Store: st}
	visits := &VisitService{Store: st}
	followUps := &FollowUpService{Store: st}
	appointments := &AppointmentService{Store: st}
	svc := &DashboardService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)
	principal := testPrincipal(clinic.ID, domain.RoleDoctor)
	patient := seedPatient(t, patients, clinic.ID)

	_, err := visits.RecordVisit(ctx, principal, RecordVisitParams{
		PatientID: patient.ID, Reason: "checkup",
	})
	require.NoError(t, err)

	_, err = followUps.ScheduleFollowUp(ctx, principal, ScheduleFollowUpParams{
		PatientID: patient.ID, DueAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = followUps.SweepOverdue(ctx)
	require.NoError(t, err)

	_, err = appointments.ScheduleAppointment(ctx, principal, ScheduleAppointmentParams{
		PatientID: patient.ID, ScheduledAt: time.Now().AddDate(0, 0, 3), Reason: "review",
	})
	require.NoError(t, err)

	counts, err := svc.Counts(ctx, principal)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts.Patients)
	require.EqualValues(t, 1, counts.VisitsLast7Days)
	require.EqualValues(t, 1, counts.OverdueFollowUps)
	require.EqualValues(t, 1, counts.UpcomingAppointments)
}

func TestAuditTrail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	patients := &PatientService{Store: st}
	svc := &AuditService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)
	admin := domain.Principal{UserID: "admin-1", ClinicID: clinic.ID, Role: domain.RoleAdmin}

	seedPatient(t, patients, clinic.ID)

	t.Run("mutations leave entries", func(t *testing.T) {
		entries, err := svc.List(ctx, admin, 10)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		require.Equal(t, domain.AuditPatientRegistered, entries[0].Action)
	})

	t.Run("doctors cannot read the trail", func(t *testing.T) {
		doctor := testPrincipal(clinic.ID, domain.RoleDoctor)
		_, err := svc.List(ctx, doctor, 10)
		require.ErrorIs(t, err, ErrNotAdmin)
	})
}
