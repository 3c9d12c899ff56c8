package dsp

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// QFunc is the tail probability of the standard normal distribution.
func QFunc(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// BPSKTheoreticalBER returns Q(sqrt(2*SNR)) for an SNR given in dB.
func BPSKTheoreticalBER(snrDB float64) float64 {
	return QFunc(math.Sqrt(2 * DBToLinear(snrDB)))
}
