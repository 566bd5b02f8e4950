package clinic_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclinic/clinicd/pkg/clinicsdk"
)

// TestDoctorOnboarding walks the full onboarding flow: the founder mints
// a doctor code, a doctor redeems it, and both appear in the staff list.
func TestDoctorOnboarding(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()
	ctx := t.Context()

	founder, join := foundClinic(t, baseURL, "founder-1", "Riverside Clinic")

	code, err := founder.IssueCode(ctx, clinicsdk.IssueCodeRequest{
		Type:       "doctor",
		ExpiryDays: 7,
	})
	require.NoError(t, err)
	require.Equal(t, "doctor", code.Type)
	require.Equal(t, join.ClinicID, code.ClinicID)

	doctor := clinicsdk.NewClient(baseURL).WithToken(mintToken(t, "doctor-1"))
	docJoin, err := doctor.RedeemCode(ctx, code.Code)
	require.NoError(t, err)
	require.Equal(t, "doctor", docJoin.Role)
	require.Equal(t, join.ClinicID, docJoin.ClinicID)

	membership, err := doctor.Membership(ctx)
	require.NoError(t, err)
	require.Equal(t, "doctor-1", membership.UserID)
	require.True(t, membership.Active)

	staff, err := founder.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff.Staff, 2)
}

// TestCodeSingleUse verifies a redeemed code cannot be redeemed again
// and that the second caller cannot tell it was ever valid.
func TestCodeSingleUse(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()
	ctx := t.Context()

	founder, _ := foundClinic(t, baseURL, "founder-1", "Riverside Clinic")

	code, err := founder.IssueCode(ctx, clinicsdk.IssueCodeRequest{Type: "doctor"})
	require.NoError(t, err)

	doctor := clinicsdk.NewClient(baseURL).WithToken(mintToken(t, "doctor-1"))
	_, err = doctor.RedeemCode(ctx, code.Code)
	require.NoError(t, err)

	latecomer := clinicsdk.NewClient(baseURL).WithToken(mintToken(t, "doctor-2"))
	_, err = latecomer.RedeemCode(ctx, code.Code)
	requireAPIError(t, err, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidCode)
}

// TestStaffDeactivation verifies an admin can deactivate a doctor, after
// which the doctor has no membership and cannot use clinic endpoints.
func TestStaffDeactivation(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()
	ctx := t.Context()

	founder, _ := foundClinic(t, baseURL, "founder-1", "Riverside Clinic")

	code, err := founder.IssueCode(ctx, clinicsdk.IssueCodeRequest{Type: "doctor"})
	require.NoError(t, err)

	doctor := clinicsdk.NewClient(baseURL).WithToken(mintToken(t, "doctor-1"))
	docJoin, err := doctor.RedeemCode(ctx, code.Code)
	require.NoError(t, err)

	require.NoError(t, founder.DeactivateStaff(ctx, docJoin.MembershipID))

	_, err = doctor.Membership(ctx)
	requireAPIError(t, err, http.StatusNotFound, clinicsdk.ErrorCodeNoMembership)

	_, err = doctor.ListPatients(ctx)
	requireAPIError(t, err, http.StatusForbidden, clinicsdk.ErrorCodeNoMembership)
}

// TestOnboardingRequiresAuth verifies protected endpoints reject missing
// and garbage tokens.
func TestOnboardingRequiresAuth(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()
	ctx := t.Context()

	anonymous := clinicsdk.NewClient(baseURL)
	_, err := anonymous.Membership(ctx)
	require.Error(t, err)

	garbage := anonymous.WithToken("not-a-jwt")
	_, err = garbage.Membership(ctx)
	require.Error(t, err)
}
