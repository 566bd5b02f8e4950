package cryptox

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet is the character set for human-enterable codes. It drops
// the characters people misread on paper or over the phone (0/O, 1/I/L)
// so a code survives being dictated at a reception desk.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// DefaultCodeLength gives roughly 40 bits of entropy with the reduced
// alphabet, plenty for a short-lived single-use token.
const DefaultCodeLength = 8

// GenerateCode creates a cryptographically random human-enterable code
// of n characters. Codes are uppercase and unambiguous; callers compare
// them case-insensitively.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: code length must be positive, got %d", n)
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}

// MustGenerateCode is like GenerateCode but panics on error. Use only
// where a failing RNG is unrecoverable anyway.
func MustGenerateCode(n int) string {
	code, err := GenerateCode(n)
	if err != nil {
		panic(err)
	}
	return code
}
