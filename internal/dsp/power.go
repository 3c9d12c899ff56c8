package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DBToLinear converts a power ratio in dB to a linear ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// MeanPower returns the average of the squared magnitude of signal.
// An empty signal has zero power.
func MeanPower(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return floats.Dot(signal, signal) / float64(len(signal))
}

// NoiseSigma returns the per-dimension standard deviation of Gaussian noise
// that puts signal at snrLinear. Half the noise power goes to each of the
// in-phase and quadrature dimensions.
func NoiseSigma(signalPower, snrLinear float64) float64 {
	return math.Sqrt(signalPower / snrLinear / 2)
}
