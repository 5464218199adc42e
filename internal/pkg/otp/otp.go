package otp

import (
	"crypto/rand"
	"math/big"
)

// Generator produces numeric one-time codes.
type Generator interface {
	// Generate returns a new code in [min, min+span).
	Generate() (int, error)
}

// NumericCode implements Generator with uniformly distributed codes drawn from
// crypto/rand. With the default bounds every code has exactly four digits, so
// codes never need zero-padding on display.
type NumericCode struct {
	min  int64
	span int64
}

// NewNumericCode returns a generator for codes in [1000, 10000).
func NewNumericCode() *NumericCode {
	return &NumericCode{min: 1000, span: 9000}
}

// Generate returns a new random code.
func (g *NumericCode) Generate() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(g.span))
	if err != nil {
		return 0, err
	}

	return int(g.min + n.Int64()), nil
}
