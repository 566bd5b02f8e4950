package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/internal/clinic/store/drivers/sqlite"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/jwtx"
)

const (
	testJWTSecret      = "router-test-jwt-secret"
	testBootstrapToken = "router-test-bootstrap-token"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	verifier, err := jwtx.NewHS256Verifier([]byte(testJWTSecret), "", nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(verifier, "test", st, logger)

	onboarding := &service.OnboardingService{Store: st}
	router.OnboardingService = onboarding
	router.BootstrapService = &service.BootstrapService{
		Store:      st,
		Onboarding: onboarding,
		Token:      testBootstrapToken,
	}
	router.ClinicService = &service.ClinicService{Store: st}
	router.MembershipService = &service.MembershipService{Store: st}
	router.PatientService = &service.PatientService{Store: st}
	router.VisitService = &service.VisitService{Store: st}
	router.AppointmentService = &service.AppointmentService{Store: st}
	router.FollowUpService = &service.FollowUpService{Store: st}
	router.AuditService = &service.AuditService{Store: st}
	router.DashboardService = &service.DashboardService{Store: st}
	router.ApplyRoutes()

	return router
}

func bearerToken(t *testing.T, subject string) string {
	t.Helper()

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// doJSON issues a request against the router and returns the recorder.
// token of "" sends no Authorization header; body of nil sends no body.
func doJSON(t *testing.T, router *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// foundClinic runs bootstrap and clinic registration, returning the
// founder's join response. The founder token must belong to a user with
// no existing membership.
func foundClinic(t *testing.T, router *Router, founderToken, clinicName string) clinicsdk.JoinResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/bootstrap", "", clinicsdk.BootstrapRequest{
		Token: testBootstrapToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	code := decodeBody[clinicsdk.CodeResponse](t, rec)
	require.Equal(t, "clinic", code.Type)
	require.NotEmpty(t, code.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/clinics/register", founderToken, clinicsdk.RegisterClinicRequest{
		Code:       code.Code,
		ClinicName: clinicName,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	join := decodeBody[clinicsdk.JoinResponse](t, rec)
	require.Equal(t, "admin", join.Role)
	require.Equal(t, clinicName, join.ClinicName)
	return join
}

func TestRouterRequiresAuthentication(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/membership", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/membership", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health probes stay open.
	rec = doJSON(t, router, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[clinicsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)

	rec = doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterBootstrapGuards(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	founder := bearerToken(t, "founder-1")

	rec := doJSON(t, router, http.MethodPost, "/v1/bootstrap", "", clinicsdk.BootstrapRequest{
		Token: "wrong-token",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	errResp := decodeBody[clinicsdk.ErrorResponse](t, rec)
	require.Equal(t, clinicsdk.ErrorCodeUnauthorized, errResp.Error)

	foundClinic(t, router, founder, "First Street Clinic")

	// Once a clinic exists, bootstrap is refused even with the token.
	rec = doJSON(t, router, http.MethodPost, "/v1/bootstrap", "", clinicsdk.BootstrapRequest{
		Token: testBootstrapToken,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	errResp = decodeBody[clinicsdk.ErrorResponse](t, rec)
	require.Equal(t, clinicsdk.ErrorCodeAlreadyBootstrap, errResp.Error)
}

func TestRouterOnboardingFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	founder := bearerToken(t, "founder-1")
	doctor := bearerToken(t, "doctor-1")
	stranger := bearerToken(t, "stranger-1")

	join := foundClinic(t, router, founder, "Harbour Medical")

	// A non-member cannot mint codes.
	rec := doJSON(t, router, http.MethodPost, "/v1/codes/issue", stranger, clinicsdk.IssueCodeRequest{
		Type: "doctor",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The founder mints a doctor code bound to their clinic.
	rec = doJSON(t, router, http.MethodPost, "/v1/codes/issue", founder, clinicsdk.IssueCodeRequest{
		Type:       "doctor",
		ExpiryDays: 7,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	code := decodeBody[clinicsdk.CodeResponse](t, rec)
	require.Equal(t, "doctor", code.Type)
	require.Equal(t, join.ClinicID, code.ClinicID)
	require.NotZero(t, code.ExpiresAt)

	// The doctor redeems it and lands in the founder's clinic.
	rec = doJSON(t, router, http.MethodPost, "/v1/codes/redeem", doctor, clinicsdk.RedeemCodeRequest{
		Code: code.Code,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	docJoin := decodeBody[clinicsdk.JoinResponse](t, rec)
	require.Equal(t, "doctor", docJoin.Role)
	require.Equal(t, join.ClinicID, docJoin.ClinicID)

	// Codes are single use; a second redemption looks like a bad code.
	rec = doJSON(t, router, http.MethodPost, "/v1/codes/redeem", stranger, clinicsdk.RedeemCodeRequest{
		Code: code.Code,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decodeBody[clinicsdk.ErrorResponse](t, rec)
	require.Equal(t, clinicsdk.ErrorCodeInvalidCode, errResp.Error)

	// Membership lookup reflects the new state.
	rec = doJSON(t, router, http.MethodGet, "/v1/membership", doctor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody[clinicsdk.MembershipResponse](t, rec)
	require.Equal(t, "doctor-1", m.UserID)
	require.True(t, m.Active)

	rec = doJSON(t, router, http.MethodGet, "/v1/membership", stranger, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The founder sees both staff members; the doctor is refused.
	rec = doJSON(t, router, http.MethodGet, "/v1/staff", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	staff := decodeBody[clinicsdk.StaffResponse](t, rec)
	require.Len(t, staff.Staff, 2)

	rec = doJSON(t, router, http.MethodGet, "/v1/staff", doctor, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterClinicalFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	founder := bearerToken(t, "founder-1")
	foundClinic(t, router, founder, "Riverside Clinic")

	// Register a patient and read it back.
	rec := doJSON(t, router, http.MethodPost, "/v1/patients", founder, clinicsdk.PatientRequest{
		GivenName:   "Grace",
		FamilyName:  "Hopper",
		DateOfBirth: "1906-12-09",
		Sex:         "female",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	patient := decodeBody[clinicsdk.PatientResponse](t, rec)
	require.NotEmpty(t, patient.PatientID)
	require.Regexp(t, `^MRN-\d{6}$`, patient.MRN)

	rec = doJSON(t, router, http.MethodGet, "/v1/patients/"+patient.PatientID, founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/patients/nonexistent", founder, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/patients", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	patients := decodeBody[clinicsdk.PatientsResponse](t, rec)
	require.Len(t, patients.Patients, 1)

	// Record a visit against the patient.
	rec = doJSON(t, router, http.MethodPost, "/v1/patients/"+patient.PatientID+"/visits", founder, clinicsdk.VisitRequest{
		Reason:    "annual check-up",
		Diagnosis: "healthy",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	visit := decodeBody[clinicsdk.VisitResponse](t, rec)
	require.Equal(t, "founder-1", visit.DoctorID)

	rec = doJSON(t, router, http.MethodGet, "/v1/patients/"+patient.PatientID+"/visits", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	visits := decodeBody[clinicsdk.VisitsResponse](t, rec)
	require.Len(t, visits.Visits, 1)

	// Schedule an appointment for later today and list by day.
	scheduledAt := time.Now().UTC().Add(time.Hour)
	rec = doJSON(t, router, http.MethodPost, "/v1/appointments", founder, clinicsdk.AppointmentRequest{
		PatientID:   patient.PatientID,
		ScheduledAt: scheduledAt.Unix(),
		Reason:      "follow-up consult",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	appt := decodeBody[clinicsdk.AppointmentResponse](t, rec)
	require.Equal(t, "scheduled", appt.Status)

	day := scheduledAt.Format("2006-01-02")
	rec = doJSON(t, router, http.MethodGet, "/v1/appointments?day="+day, founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	appts := decodeBody[clinicsdk.AppointmentsResponse](t, rec)
	require.Len(t, appts.Appointments, 1)

	rec = doJSON(t, router, http.MethodPost, "/v1/appointments/"+appt.AppointmentID+"/cancel", founder, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Cancelling twice is a 404: the conditional update finds nothing.
	rec = doJSON(t, router, http.MethodPost, "/v1/appointments/"+appt.AppointmentID+"/cancel", founder, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Follow-up lifecycle: schedule one already due, complete it.
	rec = doJSON(t, router, http.MethodPost, "/v1/followups", founder, clinicsdk.FollowUpRequest{
		PatientID: patient.PatientID,
		VisitID:   visit.VisitID,
		DueAt:     time.Now().UTC().Add(-time.Hour).Unix(),
		Notes:     "review blood work",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	followUp := decodeBody[clinicsdk.FollowUpResponse](t, rec)

	rec = doJSON(t, router, http.MethodGet, "/v1/followups/due", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	due := decodeBody[clinicsdk.FollowUpsResponse](t, rec)
	require.Len(t, due.FollowUps, 1)

	rec = doJSON(t, router, http.MethodPost, "/v1/followups/"+followUp.FollowUpID+"/complete", founder, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/followups/due", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	due = decodeBody[clinicsdk.FollowUpsResponse](t, rec)
	require.Empty(t, due.FollowUps)

	// Dashboard reflects the day's work.
	rec = doJSON(t, router, http.MethodGet, "/v1/dashboard", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decodeBody[clinicsdk.DashboardResponse](t, rec)
	require.EqualValues(t, 1, dash.Patients)
	require.EqualValues(t, 1, dash.VisitsLast7Days)

	// The audit trail is admin-only and newest first.
	rec = doJSON(t, router, http.MethodGet, "/v1/audit?limit=10", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	audit := decodeBody[clinicsdk.AuditResponse](t, rec)
	require.NotEmpty(t, audit.Entries)
}

func TestRouterClinicStatus(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	founder := bearerToken(t, "founder-1")
	join := foundClinic(t, router, founder, "Hillside Practice")

	rec := doJSON(t, router, http.MethodGet, "/v1/clinic", founder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	clinic := decodeBody[clinicsdk.ClinicResponse](t, rec)
	require.Equal(t, join.ClinicID, clinic.ClinicID)
	require.Equal(t, "active", clinic.Status)

	rec = doJSON(t, router, http.MethodPost, "/v1/clinic/status", founder, clinicsdk.ClinicStatusRequest{
		Status: "suspended",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	clinic = decodeBody[clinicsdk.ClinicResponse](t, rec)
	require.Equal(t, "suspended", clinic.Status)

	rec = doJSON(t, router, http.MethodPost, "/v1/clinic/status", founder, clinicsdk.ClinicStatusRequest{
		Status: "demolished",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
