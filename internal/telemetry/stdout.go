package telemetry

import (
	"fmt"
	"io"
	"math"

	"github.com/rjboer/GoBPSK/internal/logging"
)

// Point is the outcome of one SNR step of a sweep.
type Point struct {
	SNRdB     float64 `json:"snrDb"`
	BER       float64 `json:"ber"`
	Errors    int     `json:"errors"`
	NumBits   int     `json:"numBits"`
	TheoryBER float64 `json:"theoryBer"`
}

// Reporter receives sweep progress.
type Reporter interface {
	Report(p Point)
}

// ConsoleReporter prints one human readable line per SNR step.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter writes progress lines to out.
func NewConsoleReporter(out io.Writer) ConsoleReporter {
	if out == nil {
		out = io.Discard
	}
	return ConsoleReporter{out: out}
}

func (r ConsoleReporter) Report(p Point) {
	fmt.Fprintln(r.out, FormatPoint(p))
}

// FormatPoint renders p as "SNR = <snr> dB -> BER = <ber>". Whole-dB values
// print as integers, fractional ones keep a single decimal.
func FormatPoint(p Point) string {
	if p.SNRdB == math.Trunc(p.SNRdB) && math.Abs(p.SNRdB) < 1e15 {
		return fmt.Sprintf("SNR = %2d dB -> BER = %.6f", int64(p.SNRdB), p.BER)
	}
	return fmt.Sprintf("SNR = %4.1f dB -> BER = %.6f", p.SNRdB, p.BER)
}

// LogReporter forwards progress to a structured logger.
type LogReporter struct {
	logger logging.Logger
}

// NewLogReporter builds a reporter with the provided logger.
func NewLogReporter(logger logging.Logger) LogReporter {
	if logger == nil {
		logger = logging.Default()
	}
	return LogReporter{logger: logger}
}

func (r LogReporter) Report(p Point) {
	r.logger.Info("sweep point",
		logging.Field{Key: "subsystem", Value: "telemetry"},
		logging.Field{Key: "snr_db", Value: p.SNRdB},
		logging.Field{Key: "ber", Value: p.BER},
		logging.Field{Key: "errors", Value: p.Errors},
		logging.Field{Key: "num_bits", Value: p.NumBits},
		logging.Field{Key: "theory_ber", Value: p.TheoryBER},
	)
}

// MultiReporter fans out progress to multiple destinations.
type MultiReporter []Reporter

// Report forwards p to each configured reporter.
func (m MultiReporter) Report(p Point) {
	for _, r := range m {
		if r != nil {
			r.Report(p)
		}
	}
}
