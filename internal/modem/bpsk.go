package modem

// Modulate maps bits onto antipodal symbols: 0 -> -1, 1 -> +1.
func Modulate(bits []uint8) []float64 {
	symbols := make([]float64, len(bits))
	for i, b := range bits {
		symbols[i] = 2*float64(b) - 1
	}
	return symbols
}

// Demodulate makes a hard decision at zero. A sample of exactly 0 decodes
// as 1.
func Demodulate(received []float64) []uint8 {
	bits := make([]uint8, len(received))
	for i, v := range received {
		if v >= 0 {
			bits[i] = 1
		}
	}
	return bits
}
