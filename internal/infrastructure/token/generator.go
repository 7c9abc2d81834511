package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultSize is the number of random bytes behind each token
const DefaultSize = 32

// RandomGenerator produces URL-safe random access tokens
type RandomGenerator struct {
	size int
}

// NewRandomGenerator creates a generator drawing size random bytes per token
func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = DefaultSize
	}
	return &RandomGenerator{size: size}
}

// Generate returns a new token
func (g *RandomGenerator) Generate() (string, error) {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
