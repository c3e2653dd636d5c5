package group

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	gen := NewCodeGenerator(6)

	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	gen := NewCodeGenerator(0)
	code, err := gen.Generate()
	require.NoError(t, err)
	require.Len(t, code, DefaultCodeLength)
}
