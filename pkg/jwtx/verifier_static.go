package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// StaticVerifier validates tokens against a single fixed key: either an
// HMAC shared secret (HS256) or an Ed25519 public key (EdDSA). The
// identity provider publishes one or the other; there is no key rotation
// on our side because we never hold private material.
type StaticVerifier struct {
	method jwt.SigningMethod
	key    any
	issuer string
	aud    []string
}

// NewHS256Verifier builds a verifier for tokens signed with a shared
// secret. issuer and aud are enforced when non-empty.
func NewHS256Verifier(secret []byte, issuer string, aud []string) (*StaticVerifier, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty HS256 secret", ErrInvalidKey)
	}
	return &StaticVerifier{
		method: jwt.SigningMethodHS256,
		key:    secret,
		issuer: issuer,
		aud:    aud,
	}, nil
}

// NewEd25519Verifier builds a verifier for EdDSA-signed tokens from a
// PEM-encoded Ed25519 public key (PKIX "PUBLIC KEY" block).
func NewEd25519Verifier(pemBytes []byte, issuer string, aud []string) (*StaticVerifier, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key", ErrInvalidKey)
	}

	return &StaticVerifier{
		method: jwt.SigningMethodEdDSA,
		key:    edPub,
		issuer: issuer,
		aud:    aud,
	}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *StaticVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{v.method.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != v.method.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.key, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
