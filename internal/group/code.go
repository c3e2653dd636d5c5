package group

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet is the set of human-enterable characters for join codes.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLength is the join code length used when none is configured.
const DefaultCodeLength = 6

// CodeGenerator produces random join codes. Uniqueness is enforced by the
// store's constraint on groups.code; the service retries on conflict.
type CodeGenerator struct {
	length int
}

// NewCodeGenerator creates a generator for codes of the given length.
func NewCodeGenerator(length int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &CodeGenerator{length: length}
}

// Generate returns a new random code.
func (g *CodeGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
