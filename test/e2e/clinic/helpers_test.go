package clinic_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openclinic/clinicd/pkg/clinicsdk"
)

/*
 * Common constants and helper functions for clinic service end-to-end
 * tests: container setup, token minting, and onboarding flows.
 */

const (
	testImageName = "clinicd-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	jwtSecret      = "test-jwt-shared-secret"
	jwtIssuer      = "test-idp"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Clinic Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Clinic Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/clinicd/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupClinicContainer starts the clinic service in a container and
// returns the base URL. Rate limits are raised well above the production
// defaults so rapid test traffic does not trip them.
func setupClinicContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":         bootstrapToken,
			"CLINIC_DATABASE_FILE":    "/tmp/clinic.db",
			"CLINIC_JWT_ALGORITHM":    "HS256",
			"CLINIC_JWT_HS256_SECRET": jwtSecret,
			"CLINIC_JWT_ISSUER":       jwtIssuer,
			"ENV":                     "test",
			"LOG_LEVEL":               "info",
			"LOG_FORMAT":              "json",
			// Raised rate limits so rapid test traffic does not hit the
			// strict production defaults.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// mintToken signs an access token for the given subject the way the
// external identity provider would.
func mintToken(t *testing.T, subject string) string {
	t.Helper()

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

// foundClinic bootstraps the service and registers a clinic for the
// given founder, returning the founder's authenticated client and the
// join response.
func foundClinic(t *testing.T, baseURL, founderID, clinicName string) (*clinicsdk.Client, clinicsdk.JoinResponse) {
	t.Helper()
	ctx := context.Background()

	client := clinicsdk.NewClient(baseURL)

	code, err := client.Bootstrap(ctx, clinicsdk.BootstrapRequest{Token: bootstrapToken})
	require.NoError(t, err, "Bootstrap should succeed")
	require.Equal(t, "clinic", code.Type)
	require.NotEmpty(t, code.Code)

	founder := client.WithToken(mintToken(t, founderID))
	join, err := founder.RegisterClinic(ctx, code.Code, clinicName)
	require.NoError(t, err, "Clinic registration should succeed")
	require.Equal(t, "admin", join.Role)

	return founder, join
}

// requireAPIError asserts that err is an *clinicsdk.APIError with the
// given HTTP status and error code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *clinicsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
