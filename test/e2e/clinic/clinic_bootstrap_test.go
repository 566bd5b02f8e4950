package clinic_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclinic/clinicd/pkg/clinicsdk"
)

// TestBootstrapSuccess verifies bootstrap mints a clinic code and a
// clinic can be founded from it.
func TestBootstrapSuccess(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()

	_, join := foundClinic(t, baseURL, "founder-1", "Harbour Medical")

	require.NotEmpty(t, join.ClinicID)
	require.NotEmpty(t, join.MembershipID)

	t.Logf("Clinic founded: %s (%s)", join.ClinicName, join.ClinicID)
}

// TestBootstrapRejectsBadToken verifies the bootstrap token is enforced.
func TestBootstrapRejectsBadToken(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()

	client := clinicsdk.NewClient(baseURL)

	_, err := client.Bootstrap(t.Context(), clinicsdk.BootstrapRequest{Token: "wrong-token"})
	requireAPIError(t, err, http.StatusUnauthorized, clinicsdk.ErrorCodeUnauthorized)
}

// TestBootstrapIdempotency verifies that bootstrap is refused once any
// clinic exists, even with a valid token.
func TestBootstrapIdempotency(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()

	foundClinic(t, baseURL, "founder-1", "Harbour Medical")

	client := clinicsdk.NewClient(baseURL)
	_, err := client.Bootstrap(t.Context(), clinicsdk.BootstrapRequest{Token: bootstrapToken})
	requireAPIError(t, err, http.StatusConflict, clinicsdk.ErrorCodeAlreadyBootstrap)

	t.Logf("Second bootstrap correctly rejected")
}
