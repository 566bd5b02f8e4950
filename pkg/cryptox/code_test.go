package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	code, err := GenerateCode(DefaultCodeLength)
	require.NoError(t, err)
	require.Len(t, code, DefaultCodeLength)

	// Only characters from the unambiguous alphabet.
	for _, c := range code {
		require.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected character %q", c)
	}

	// Two codes should not collide in practice.
	other, err := GenerateCode(DefaultCodeLength)
	require.NoError(t, err)
	require.NotEqual(t, code, other)
}

func TestGenerateCodeRejectsBadLength(t *testing.T) {
	t.Parallel()

	_, err := GenerateCode(0)
	require.Error(t, err)

	_, err = GenerateCode(-3)
	require.Error(t, err)
}

func TestCodeAlphabetHasNoAmbiguousCharacters(t *testing.T) {
	t.Parallel()

	for _, c := range "01OIL" {
		require.False(t, strings.ContainsRune(codeAlphabet, c))
	}
}
