package otp

import "testing"

func TestNumericCode_Generate(t *testing.T) {
	gen := NewNumericCode()

	seen := make(map[int]struct{})
	for range 1000 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if code < 1000 || code >= 10000 {
			t.Fatalf("Generate() = %d, want in [1000, 10000)", code)
		}
		seen[code] = struct{}{}
	}

	// 1000 draws from 9000 values should not collapse onto a handful of codes.
	if len(seen) < 100 {
		t.Errorf("Generate() produced only %d distinct codes in 1000 draws", len(seen))
	}
}
