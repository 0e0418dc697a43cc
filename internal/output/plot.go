/*
PURPOSE:
  Renders the latency comparison scatter plot: compiled-async latency on
  X, reference latency on Y, one point per prompt, colored by prompt
  length, with a dashed diagonal parity line.

REQUIREMENTS:
  User-specified:
  - JPEG output named from the model id.
  - Optional log-log scale.

  Implementation-discovered:
  - The parity diagonal must span up to the larger of the two latency
    maxima, otherwise points sit visually "past" the line.
  - Log scale cannot include zero; the diagonal then starts at the
    smallest positive latency.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on render/save failure. The runner treats a plot
    failure as a run error but only after the stats were printed.

IMPLEMENTATION RULES:
  - Use gonum.org/v1/plot; format is inferred from the file extension.
  - Color gradient computed per point, pale to dark with prompt length.

USAGE:
  err := output.ScatterPlot(records, "latency_benchmark_gpt-4o.jpeg", "title", false)

SELF-HEALING INSTRUCTIONS:
  - If the file comes out empty, check that at least one record has a
    positive latency.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update labels when the backend naming changes.
*/

package output

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/daryltucker/tokbench/internal/model"
)

// ScatterPlot renders the compiled-async vs reference latency scatter
// and saves it to path. The image format follows the file extension
// (jpeg for the default artifact name).
func ScatterPlot(records []model.Record, path, title string, logScale bool) error {
	if len(records) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Compiled Async, sec"
	p.Y.Label.Text = "Reference, sec"

	pts := make(plotter.XYs, len(records))
	minLen, maxLen := records[0].PromptLen, records[0].PromptLen
	maxLatency := 0.0
	minPositive := math.Inf(1)
	for i, r := range records {
		x := r.CompiledAsync.Seconds()
		y := r.Reference.Seconds()
		pts[i].X = x
		pts[i].Y = y
		maxLatency = math.Max(maxLatency, math.Max(x, y))
		for _, v := range []float64{x, y} {
			if v > 0 && v < minPositive {
				minPositive = v
			}
		}
		if r.PromptLen < minLen {
			minLen = r.PromptLen
		}
		if r.PromptLen > maxLen {
			maxLen = r.PromptLen
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  lengthColor(records[i].PromptLen, minLen, maxLen),
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	// Parity diagonal: points below it mean the compiled-async backend
	// was faster than the reference for that prompt.
	diagStart := 0.0
	if logScale {
		diagStart = minPositive
	}
	diag, err := plotter.NewLine(plotter.XYs{{X: diagStart, Y: diagStart}, {X: maxLatency, Y: maxLatency}})
	if err != nil {
		return fmt.Errorf("failed to build parity line: %w", err)
	}
	diag.LineStyle.Color = color.RGBA{R: 200, A: 255}
	diag.LineStyle.Width = vg.Points(1)
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(diag)

	if logScale {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		p.X.Min, p.Y.Min = minPositive, minPositive
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// lengthColor maps prompt length onto a pale-to-dark blue gradient.
func lengthColor(length, minLen, maxLen int) color.Color {
	t := 0.0
	if maxLen > minLen {
		t = float64(length-minLen) / float64(maxLen-minLen)
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	// light steel blue -> dark slate blue
	return color.RGBA{
		R: lerp(176, 40),
		G: lerp(196, 35),
		B: lerp(222, 120),
		A: 255,
	}
}
