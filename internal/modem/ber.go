package modem

import "fmt"

// CountErrors returns the number of positions where expected and actual
// disagree.
func CountErrors(expected, actual []uint8) (int, error) {
	if len(expected) != len(actual) {
		return 0, fmt.Errorf("expected %d bits, got %d: %w", len(expected), len(actual), ErrLengthMismatch)
	}
	if len(expected) == 0 {
		return 0, ErrEmptySequence
	}
	errs := 0
	for i := range expected {
		if expected[i] != actual[i] {
			errs++
		}
	}
	return errs, nil
}

// ComputeBER returns the fraction of mismatched bits, always in [0, 1].
func ComputeBER(expected, actual []uint8) (float64, error) {
	errs, err := CountErrors(expected, actual)
	if err != nil {
		return 0, err
	}
	return float64(errs) / float64(len(expected)), nil
}
