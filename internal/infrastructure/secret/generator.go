package secret

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/doeshing/stackctl/internal/ports"
)

// Alphabet is the character set of generated credentials.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiased is the largest multiple of len(Alphabet) that fits in a byte;
// bytes at or above it are rejected so every character is equally likely.
const maxUnbiased = 256 - 256%len(Alphabet)

// Generator implements ports.SecretGenerator on a cryptographically secure source.
type Generator struct {
	source io.Reader
}

// NewGenerator reads from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{source: rand.Reader}
}

// Generate returns length characters drawn uniformly from Alphabet.
func (g *Generator) Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("secret length must be positive, got %d", length)
	}
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

var _ ports.SecretGenerator = (*Generator)(nil)
