package modem

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateBits draws n independent fair bits from src.
func GenerateBits(n int, src rand.Source) ([]uint8, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate %d bits: %w", n, ErrInvalidLength)
	}
	if src == nil {
		return nil, ErrNilSource
	}
	coin := distuv.Bernoulli{P: 0.5, Src: src}
	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = uint8(coin.Rand())
	}
	return bits, nil
}
