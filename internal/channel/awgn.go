package channel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rjboer/GoBPSK/internal/dsp"
)

var (
	// ErrEmptySignal is returned when noise is requested for an empty signal.
	ErrEmptySignal = errors.New("signal is empty")
	// ErrInvalidSNR is returned for an SNR that has no finite, positive linear value.
	ErrInvalidSNR = errors.New("invalid SNR")
	// ErrNilSource is returned when the channel has no random source.
	ErrNilSource = errors.New("random source is nil")
)

// AWGN adds white Gaussian noise scaled to a target SNR. The noise level is
// derived from the measured power of each input, not from a nominal amplitude.
type AWGN struct {
	src rand.Source
}

// New builds an AWGN channel drawing noise from src.
func New(src rand.Source) *AWGN {
	return &AWGN{src: src}
}

// NoiseSigma returns the per-sample noise standard deviation Apply would use
// for signal at snrDB.
func (c *AWGN) NoiseSigma(signal []float64, snrDB float64) (float64, error) {
	if len(signal) == 0 {
		return 0, ErrEmptySignal
	}
	if math.IsNaN(snrDB) || math.IsInf(snrDB, 0) {
		return 0, fmt.Errorf("%w: %v dB", ErrInvalidSNR, snrDB)
	}
	snr := dsp.DBToLinear(snrDB)
	if snr == 0 || math.IsInf(snr, 0) {
		return 0, fmt.Errorf("%w: %v dB has no finite linear ratio", ErrInvalidSNR, snrDB)
	}
	return dsp.NoiseSigma(dsp.MeanPower(signal), snr), nil
}

// Apply returns a new slice holding signal plus a fresh noise realization.
func (c *AWGN) Apply(signal []float64, snrDB float64) ([]float64, error) {
	if c == nil || c.src == nil {
		return nil, ErrNilSource
	}
	sigma, err := c.NoiseSigma(signal, snrDB)
	if err != nil {
		return nil, err
	}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: c.src}
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v + noise.Rand()
	}
	return out, nil
}
