package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret []byte, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func baseClaims(ttl time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp",
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"clinicd"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestHS256VerifierRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret-material")
	v, err := NewHS256Verifier(secret, "idp", []string{"clinicd"})
	require.NoError(t, err)

	claims, err := v.Verify(signHS256(t, secret, baseClaims(time.Minute)))
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestHS256VerifierRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	v, err := NewHS256Verifier([]byte("right"), "", nil)
	require.NoError(t, err)

	_, err = v.Verify(signHS256(t, []byte("wrong"), baseClaims(time.Minute)))
	require.Error(t, err)
}

func TestHS256VerifierRejectsExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	v, err := NewHS256Verifier(secret, "", nil)
	require.NoError(t, err)

	_, err = v.Verify(signHS256(t, secret, baseClaims(-time.Minute)))
	require.Error(t, err)
}

func TestHS256VerifierEnforcesIssuerAndAudience(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token := signHS256(t, secret, baseClaims(time.Minute))

	v, err := NewHS256Verifier(secret, "someone-else", nil)
	require.NoError(t, err)
	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)

	v, err = NewHS256Verifier(secret, "idp", []string{"other-service"})
	require.NoError(t, err)
	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrAudience)
}

func TestEd25519Verifier(t *testing.T) {
	t.Parallel()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewEd25519Verifier(pemBytes, "idp", nil)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, baseClaims(time.Minute))
	signed, err := token.SignedString(priv)
	require.NoError(t, err)

	claims, err := v.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)

	// HS256 token must be refused by an EdDSA verifier.
	_, err = v.Verify(signHS256(t, []byte("secret"), baseClaims(time.Minute)))
	require.Error(t, err)
}

func TestNewEd25519VerifierRejectsBadPEM(t *testing.T) {
	t.Parallel()

	_, err := NewEd25519Verifier([]byte("not pem"), "", nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}
