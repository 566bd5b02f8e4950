package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openclinic/clinicd/pkg/jwtx"
)

// InitVerifier builds the token verifier from config. This service never
// signs tokens; the external identity provider does. We only ever hold
// verification material:
//
//   - "HS256": a shared secret with the identity provider.
//   - "EdDSA": the provider's published Ed25519 public key, PEM encoded.
func InitVerifier(cfg Config, logger *slog.Logger) (jwtx.Verifier, error) {
	var aud []string
	if cfg.Audience != "" {
		aud = []string{cfg.Audience}
	}

	switch strings.ToUpper(cfg.JWTAlgorithm) {
	case "EDDSA":
		if cfg.JWTPublicKeyFile == "" {
			return nil, fmt.Errorf("CLINIC_JWT_PUBLIC_KEY_FILE is required for EdDSA")
		}

		pemBytes, err := os.ReadFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key file: %w", err)
		}

		verifier, err := jwtx.NewEd25519Verifier(pemBytes, cfg.Issuer, aud)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize EdDSA verifier: %w", err)
		}

		logger.Info("token verifier initialized",
			"algorithm", "EdDSA",
			"public_key_file", cfg.JWTPublicKeyFile,
			"issuer", cfg.Issuer,
		)
		return verifier, nil

	case "HS256", "":
		if cfg.JWTHS256Secret == "" {
			return nil, fmt.Errorf("CLINIC_JWT_HS256_SECRET is required for HS256")
		}

		verifier, err := jwtx.NewHS256Verifier([]byte(cfg.JWTHS256Secret), cfg.Issuer, aud)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize HS256 verifier: %w", err)
		}

		logger.Info("token verifier initialized",
			"algorithm", "HS256",
			"issuer", cfg.Issuer,
		)
		return verifier, nil

	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", cfg.JWTAlgorithm)
	}
}
