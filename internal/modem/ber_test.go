package modem

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestComputeBER(t *testing.T) {
	tests := []struct {
		name     string
		expected []uint8
		actual   []uint8
		want     float64
	}{
		{name: "identical", expected: []uint8{0, 1, 1, 0}, actual: []uint8{0, 1, 1, 0}, want: 0},
		{name: "all_flipped", expected: []uint8{0, 1, 1, 0}, actual: []uint8{1, 0, 0, 1}, want: 1},
		{name: "one_of_four", expected: []uint8{0, 1, 1, 0}, actual: []uint8{0, 1, 0, 0}, want: 0.25},
		{name: "single_bit", expected: []uint8{1}, actual: []uint8{0}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBER(tt.expected, tt.actual)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v got %v", tt.want, got)
			}
		})
	}
}

func TestComputeBERRandomSelfAndFlip(t *testing.T) {
	bits, _ := GenerateBits(10000, rand.NewPCG(11, 11))
	if ber, err := ComputeBER(bits, bits); err != nil || ber != 0 {
		t.Fatalf("self BER = %v, %v", ber, err)
	}
	if ber, err := ComputeBER(bits, flipBits(bits)); err != nil || ber != 1 {
		t.Fatalf("flipped BER = %v, %v", ber, err)
	}
}

func TestComputeBERLengthMismatch(t *testing.T) {
	_, err := ComputeBER([]uint8{0, 1, 1}, []uint8{0, 1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch got %v", err)
	}
	if !strings.Contains(err.Error(), "expected 3 bits, got 2") {
		t.Fatalf("error does not carry lengths: %v", err)
	}
}

func TestComputeBEREmpty(t *testing.T) {
	if _, err := ComputeBER(nil, nil); !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence got %v", err)
	}
}

func TestCountErrors(t *testing.T) {
	n, err := CountErrors([]uint8{1, 1, 0, 0, 1}, []uint8{1, 0, 1, 0, 1})
	if err != nil || n != 2 {
		t.Fatalf("CountErrors = %d, %v", n, err)
	}
}
