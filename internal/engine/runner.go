/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Builds the backends, samples the corpus, runs the sync and async
  benchmarks, and emits stats plus artifacts.

REQUIREMENTS:
  User-specified:
  - Run both benchmarks over the same sampled prompts.
  - Print summary stats; emit CSV/JSONL and the scatter plot.

  Implementation-discovered:
  - Benchmark data must be complete before any reporting happens; a
    failed run emits nothing.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/dataset, internal/tokenizer, internal/stats, internal/output

ERROR HANDLING:
  - Backend errors abort the run with no artifacts (partial tables would
    skew the aggregate statistics).
  - Reporting errors after stats were printed are surfaced, but the
    numbers are already on stdout.

IMPLEMENTATION RULES:
  - Phases: Backends -> Corpus -> Sync -> Async -> Report.
  - The async queue size follows the performance hint unless overridden.

USAGE:
  engine.Run(cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/sync.go
  - internal/engine/async.go

MAINTENANCE:
  - Update phase order only if a new benchmark mode is added.
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daryltucker/tokbench/internal/config"
	"github.com/daryltucker/tokbench/internal/dataset"
	"github.com/daryltucker/tokbench/internal/output"
	"github.com/daryltucker/tokbench/internal/stats"
	"github.com/daryltucker/tokbench/internal/tokenizer"
)

// Run executes the full benchmark suite.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 1. Backends
	ref, err := tokenizer.NewReference(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to build reference backend: %w", err)
	}
	compiled := tokenizer.Compile(ref, tokenizer.WithProfiling(cfg.StageStats))
	output.Logger.Info("Backends ready", "model", cfg.Model)

	// 2. Corpus
	var pairs []dataset.Pair
	if cfg.Dataset != "" {
		pairs, err = dataset.Load(cfg.Dataset)
		if err != nil {
			return err
		}
		output.Logger.Info("Dataset loaded", "path", cfg.Dataset, "usable_pairs", len(pairs))
	} else {
		pairs = dataset.Synthetic(cfg.NumPairs)
		output.Logger.Info("Using synthetic corpus", "pairs", len(pairs))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampled, err := dataset.Sample(pairs, cfg.NumPairs, seed)
	if err != nil {
		return err
	}
	reqs := dataset.Flatten(sampled)
	output.Logger.Info("Corpus sampled", "pairs", len(sampled), "requests", len(reqs))

	// 3. Sync benchmark
	output.Logger.Info("Running sync benchmark", "warmup", cfg.Warmup)
	records, err := BenchmarkSync(compiled, ref, reqs, cfg.Warmup)
	if err != nil {
		return err
	}

	// 4. Async benchmark
	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = Hint(cfg.Hint).Jobs()
	}
	queue := NewInferQueue(compiled, jobs)
	output.Logger.Info("Running async benchmark", "jobs", queue.Jobs(), "hint", cfg.Hint)
	run, err := BenchmarkAsync(queue, reqs)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].CompiledAsync = run.Times[i]
	}

	// 5. Report
	stats.Print(os.Stdout, records, run.Throughput())
	if cfg.StageStats {
		fmt.Println("Compiled pipeline stage stats:")
		for _, s := range compiled.StageStats() {
			fmt.Printf("  %-14s total=%-14s count=%d\n", s.Stage, s.Total, s.Count)
		}
		hits, misses := compiled.CacheStats()
		fmt.Printf("  piece cache: %d hits, %d misses\n", hits, misses)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	modelName := shortModelName(cfg.Model)

	if cfg.DumpStats {
		csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("latency_res_%s.csv", modelName))
		csvWriter, err := output.NewLatencyWriter(csvPath)
		if err != nil {
			return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
		}
		if err := csvWriter.WriteAll(records); err != nil {
			csvWriter.Close()
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		if err := csvWriter.Close(); err != nil {
			return err
		}
		output.Logger.Info("Latency CSV written", "path", csvPath)

		jsonPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("latency_res_%s.jsonl", modelName))
		jsonWriter, err := output.NewJSONWriter(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to init JSONL writer at %s: %w", jsonPath, err)
		}
		for _, r := range records {
			if err := jsonWriter.Write(r); err != nil {
				jsonWriter.Close()
				return fmt.Errorf("failed to write JSONL: %w", err)
			}
		}
		if err := jsonWriter.Close(); err != nil {
			return err
		}
		output.Logger.Info("Latency JSONL written", "path", jsonPath)
	}

	plotPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("latency_benchmark_%s.jpeg", modelName))
	title := fmt.Sprintf("Compiled vs Reference Latency\n%s", cfg.Model)
	if err := output.ScatterPlot(records, plotPath, title, cfg.LogScale); err != nil {
		return err
	}
	output.Logger.Info("Plot written", "path", plotPath)

	return nil
}

// shortModelName strips any repo-style prefix from the model id so the
// artifact names stay filesystem-friendly.
func shortModelName(modelID string) string {
	if i := strings.LastIndex(modelID, "/"); i >= 0 {
		return modelID[i+1:]
	}
	return modelID
}
