package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rjboer/GoBPSK/internal/app"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4.5 * vg.Inch
)

// PlotBER renders measured BER against SNR on a log axis, with the
// theoretical BPSK curve for reference. Points with zero BER cannot be placed
// on a log axis and are left out; when nothing positive remains the axis is
// linear.
func PlotBER(res app.Result, path string) error {
	if len(res.SNRdB) != len(res.BER) {
		return fmt.Errorf("plot BER: %d SNR values for %d BER values", len(res.SNRdB), len(res.BER))
	}
	measured := positiveXYs(res.SNRdB, res.BER)
	theory := positiveXYs(res.SNRdB, res.TheoryBER)

	p := plot.New()
	p.Title.Text = "BPSK over AWGN: BER vs SNR"
	p.X.Label.Text = "SNR (dB)"
	p.Y.Label.Text = "Bit Error Rate (BER)"
	if len(measured)+len(theory) > 0 {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	if len(theory) > 0 {
		line, err := plotter.NewLine(theory)
		if err != nil {
			return fmt.Errorf("plot BER: theory line: %w", err)
		}
		line.Color = color.RGBA{R: 200, G: 80, B: 40, A: 255}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add("theory", line)
	}
	if len(measured) > 0 {
		line, points, err := plotter.NewLinePoints(measured)
		if err != nil {
			return fmt.Errorf("plot BER: measured line: %w", err)
		}
		line.Color = color.RGBA{B: 180, A: 255}
		points.Shape = draw.CircleGlyph{}
		points.Color = color.RGBA{B: 180, A: 255}
		p.Add(line, points)
		p.Legend.Add("simulated", line, points)
	}
	p.Legend.Top = true
	// A flat range is widened by ±1, which would go negative on a log axis.
	if len(measured)+len(theory) > 0 && p.Y.Min == p.Y.Max {
		p.Y.Min /= 10
		p.Y.Max *= 10
	}

	return save(p, path)
}

// PlotConstellation scatters received in-phase samples on the I axis.
func PlotConstellation(received []float64, snrDB float64, path string) error {
	pts := make(plotter.XYs, len(received))
	for i, v := range received {
		pts[i].X = v
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("BPSK Constellation (SNR = %g dB)", snrDB)
	p.X.Label.Text = "In-Phase"
	p.Y.Label.Text = "Quadrature"
	p.Y.Min, p.Y.Max = -1, 1
	p.Add(plotter.NewGrid())

	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("plot constellation: %w", err)
		}
		scatter.Shape = draw.CircleGlyph{}
		scatter.Radius = vg.Points(1.5)
		scatter.Color = color.RGBA{B: 180, A: 77}
		p.Add(scatter)
	}

	return save(p, path)
}

func positiveXYs(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || ys[i] <= 0 {
			continue
		}
		out = append(out, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return out
}

func save(p *plot.Plot, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
