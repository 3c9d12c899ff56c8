package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rjboer/GoBPSK/internal/channel"
	"github.com/rjboer/GoBPSK/internal/dsp"
	"github.com/rjboer/GoBPSK/internal/logging"
	"github.com/rjboer/GoBPSK/internal/modem"
	"github.com/rjboer/GoBPSK/internal/telemetry"
)

var (
	// ErrInvalidNumBits is returned when the configured message length is not positive.
	ErrInvalidNumBits = errors.New("number of bits must be positive")
	// ErrNoSNRValues is returned when the sweep has nothing to do.
	ErrNoSNRValues = errors.New("no SNR values configured")
)

// Config captures sweep level configuration.
type Config struct {
	NumBits int
	SNRdB   []float64
}

// DefaultSNRs returns 0 through 10 dB in 1 dB steps.
func DefaultSNRs() []float64 {
	out := make([]float64, 0, 11)
	for snr := 0; snr <= 10; snr++ {
		out = append(out, float64(snr))
	}
	return out
}

// Result holds one completed sweep. SNRdB, BER, Errors and TheoryBER are
// index aligned and follow the configured SNR order.
type Result struct {
	NumBits   int
	SNRdB     []float64
	BER       []float64
	Errors    []int
	TheoryBER []float64
	Bits      []uint8
	Symbols   []float64
}

// Sweeper runs the bit source, modulator, channel, demodulator and BER
// estimator once per SNR value. All randomness comes from a single source,
// so a sweep is reproducible for a given seed.
type Sweeper struct {
	src      rand.Source
	channel  *channel.AWGN
	reporter telemetry.Reporter
	logger   logging.Logger
	cfg      Config
}

func NewSweeper(src rand.Source, reporter telemetry.Reporter, logger logging.Logger, cfg Config) *Sweeper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		src:      src,
		channel:  channel.New(src),
		reporter: reporter,
		logger:   logger.With(logging.Field{Key: "subsystem", Value: "sweep"}),
		cfg:      cfg,
	}
}

// Run executes the sweep. The first failing SNR aborts the whole run and no
// partial result is returned.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	if s.cfg.NumBits <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidNumBits, s.cfg.NumBits)
	}
	if len(s.cfg.SNRdB) == 0 {
		return Result{}, ErrNoSNRValues
	}

	start := time.Now()
	bits, err := modem.GenerateBits(s.cfg.NumBits, s.src)
	if err != nil {
		return Result{}, fmt.Errorf("generate bits: %w", err)
	}
	symbols := modem.Modulate(bits)

	res := Result{
		NumBits:   s.cfg.NumBits,
		SNRdB:     make([]float64, 0, len(s.cfg.SNRdB)),
		BER:       make([]float64, 0, len(s.cfg.SNRdB)),
		Errors:    make([]int, 0, len(s.cfg.SNRdB)),
		TheoryBER: make([]float64, 0, len(s.cfg.SNRdB)),
		Bits:      bits,
		Symbols:   symbols,
	}

	for _, snr := range s.cfg.SNRdB {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		pointStart := time.Now()
		p, err := s.measure(bits, symbols, snr)
		if err != nil {
			return Result{}, fmt.Errorf("snr %v dB: %w", snr, err)
		}
		res.SNRdB = append(res.SNRdB, p.SNRdB)
		res.BER = append(res.BER, p.BER)
		res.Errors = append(res.Errors, p.Errors)
		res.TheoryBER = append(res.TheoryBER, p.TheoryBER)

		if s.reporter != nil {
			s.reporter.Report(p)
		}
		s.logger.Debug("point complete",
			logging.Field{Key: "snr_db", Value: p.SNRdB},
			logging.Field{Key: "ber", Value: p.BER},
			logging.Field{Key: "errors", Value: p.Errors},
			logging.Field{Key: "theory_ber", Value: p.TheoryBER},
			logging.Field{Key: "duration_ms", Value: time.Since(pointStart).Seconds() * 1000},
		)
	}

	s.logger.Info("sweep complete",
		logging.Field{Key: "num_bits", Value: s.cfg.NumBits},
		logging.Field{Key: "points", Value: len(res.SNRdB)},
		logging.Field{Key: "elapsed_ms", Value: time.Since(start).Seconds() * 1000},
	)
	return res, nil
}

func (s *Sweeper) measure(bits []uint8, symbols []float64, snrDB float64) (telemetry.Point, error) {
	rx, err := s.channel.Apply(symbols, snrDB)
	if err != nil {
		return telemetry.Point{}, fmt.Errorf("channel: %w", err)
	}
	detected := modem.Demodulate(rx)
	errs, err := modem.CountErrors(bits, detected)
	if err != nil {
		return telemetry.Point{}, fmt.Errorf("count errors: %w", err)
	}
	return telemetry.Point{
		SNRdB:     snrDB,
		BER:       float64(errs) / float64(len(bits)),
		Errors:    errs,
		NumBits:   len(bits),
		TheoryBER: dsp.BPSKTheoreticalBER(snrDB),
	}, nil
}

// Constellation draws one more noisy realization of symbols at snrDB from the
// sweep's source.
func (s *Sweeper) Constellation(symbols []float64, snrDB float64) ([]float64, error) {
	rx, err := s.channel.Apply(symbols, snrDB)
	if err != nil {
		return nil, fmt.Errorf("constellation at %v dB: %w", snrDB, err)
	}
	return rx, nil
}
