package secret

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateLengthAndCharset(t *testing.T) {
	g := NewGenerator()
	for _, n := range []int{1, 2, 16, 24, 32, 48, 64, 257} {
		s, err := g.Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", n, err)
		}
		if len(s) != n {
			t.Fatalf("Generate(%d) returned %d chars", n, len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("Generate(%d) produced %q outside alphabet", n, r)
			}
		}
	}
}

func TestGenerateIndependentValues(t *testing.T) {
	g := NewGenerator()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s, err := g.Generate(16)
		if err != nil {
			t.Fatal(err)
		}
		if seen[s] {
			t.Fatalf("duplicate secret %q", s)
		}
		seen[s] = true
	}
}

func TestGenerateRejectsNonPositiveLength(t *testing.T) {
	for _, n := range []int{0, -5} {
		if _, err := NewGenerator().Generate(n); err == nil {
			t.Fatalf("expected error for length %d", n)
		}
	}
}

func TestGenerateSkipsBiasedBytes(t *testing.T) {
	// 255 and 248 are above the unbiased range and must be skipped.
	src := bytes.NewReader([]byte{255, 248, 0, 61, 52, 255, 255, 255, 255, 255})
	g := &Generator{source: src}
	s, err := g.Generate(3)
	if err != nil {
		t.Fatal(err)
	}
	if s != "A90" {
		t.Fatalf("expected A90, got %q", s)
	}
}

func TestGeneratePropagatesSourceError(t *testing.T) {
	g := &Generator{source: errReader{}}
	if _, err := g.Generate(8); err == nil {
		t.Fatal("expected error from failing source")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }
