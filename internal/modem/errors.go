package modem

import "errors"

var (
	// ErrInvalidLength is returned when a bit count is not positive.
	ErrInvalidLength = errors.New("bit count must be positive")
	// ErrNilSource is returned when no random source is supplied.
	ErrNilSource = errors.New("random source is nil")
	// ErrLengthMismatch is returned when two bit sequences differ in length.
	ErrLengthMismatch = errors.New("bit sequence length mismatch")
	// ErrEmptySequence is returned when a BER is requested over zero bits.
	ErrEmptySequence = errors.New("bit sequence is empty")
)
