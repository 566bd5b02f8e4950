package clinic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclinic/clinicd/pkg/clinicsdk"
)

// TestHealthEndpoints verifies the liveness and readiness probes respond
// without authentication.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupClinicContainer(t)
	defer cleanup()
	ctx := t.Context()

	client := clinicsdk.NewClient(baseURL)

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)
	require.NotEmpty(t, live.Uptime)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
