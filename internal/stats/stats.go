/*
PURPOSE:
  Descriptive statistics over the collected benchmark table, plus the
  throughput figures printed at the end of a run.

REQUIREMENTS:
  User-specified:
  - Count-excluded summary per column: mean, std, min, 25%, 50%, 75%, max.
  - Sync FPS = N / sum(latencies) per backend; async FPS comes from the
    harness measurement.

  Implementation-discovered:
  - Pandas-style quantiles use linear interpolation; gonum's LinInterp
    matches that.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Pure derivation; the only failure mode is an empty table, which the
    runner never passes in.

IMPLEMENTATION RULES:
  - Use gonum.org/v1/gonum/stat for moments and quantiles.
  - Use olekukonko/tablewriter for the summary table.

USAGE:
  stats.Print(os.Stdout, records, asyncFPS)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update column set when Record grows new metrics.
*/

package stats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/daryltucker/tokbench/internal/model"
)

// Summary is a count-excluded describe() of one column.
type Summary struct {
	Mean float64
	Std  float64
	Min  float64
	P25  float64
	P50  float64
	P75  float64
	Max  float64
}

// Describe computes the summary of vals. vals must be non-empty; the
// input slice is not modified.
func Describe(vals []float64) Summary {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return Summary{
		Mean: stat.Mean(sorted, nil),
		Std:  stat.StdDev(sorted, nil),
		Min:  floats.Min(sorted),
		P25:  stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P75:  stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:  floats.Max(sorted),
	}
}

// FPS is requests per second under fully sequential execution:
// N divided by the sum of the individual latencies.
func FPS(times []time.Duration) float64 {
	var sum float64
	for _, t := range times {
		sum += t.Seconds()
	}
	if sum <= 0 {
		return 0
	}
	return float64(len(times)) / sum
}

// Columns extracts the per-column value slices from the record table.
func Columns(records []model.Record) (compiled, reference, compiledAsync, promptLen []float64) {
	compiled = make([]float64, len(records))
	reference = make([]float64, len(records))
	compiledAsync = make([]float64, len(records))
	promptLen = make([]float64, len(records))
	for i, r := range records {
		compiled[i] = r.Compiled.Seconds()
		reference[i] = r.Reference.Seconds()
		compiledAsync[i] = r.CompiledAsync.Seconds()
		promptLen[i] = float64(r.PromptLen)
	}
	return
}

// Print writes the throughput lines and the latency/prompt summary
// table to w.
func Print(w io.Writer, records []model.Record, asyncFPS float64) {
	compiled, reference, compiledAsync, promptLen := Columns(records)

	compiledFPS := FPS(durations(records, func(r model.Record) time.Duration { return r.Compiled }))
	referenceFPS := FPS(durations(records, func(r model.Record) time.Duration { return r.Reference }))

	fmt.Fprintf(w, "Sync:  compiled: %.3f FPS, reference: %.3f FPS, ratio: %.3f\n",
		compiledFPS, referenceFPS, compiledFPS/referenceFPS)
	fmt.Fprintf(w, "Async: compiled: %.3f FPS, reference: %.3f FPS, ratio: %.3f\n",
		asyncFPS, referenceFPS, asyncFPS/referenceFPS)
	fmt.Fprintln(w, "Latency and prompt stats:")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "compiled_s", "reference_s", "compiled_async_s", "prompt_len"})
	summaries := []Summary{Describe(compiled), Describe(reference), Describe(compiledAsync), Describe(promptLen)}
	rows := []struct {
		label string
		pick  func(Summary) float64
	}{
		{"mean", func(s Summary) float64 { return s.Mean }},
		{"std", func(s Summary) float64 { return s.Std }},
		{"min", func(s Summary) float64 { return s.Min }},
		{"25%", func(s Summary) float64 { return s.P25 }},
		{"50%", func(s Summary) float64 { return s.P50 }},
		{"75%", func(s Summary) float64 { return s.P75 }},
		{"max", func(s Summary) float64 { return s.Max }},
	}
	for _, row := range rows {
		record := []string{row.label}
		for _, s := range summaries {
			record = append(record, fmt.Sprintf("%.6f", row.pick(s)))
		}
		table.Append(record)
	}
	table.Render()
}

func durations(records []model.Record, pick func(model.Record) time.Duration) []time.Duration {
	out := make([]time.Duration, len(records))
	for i, r := range records {
		out[i] = pick(r)
	}
	return out
}
