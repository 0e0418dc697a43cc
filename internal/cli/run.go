/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark suite for one tokenizer model.

REQUIREMENTS:
  User-specified:
  - Positional model id argument plus flags mirroring the reference
    tool: dataset path, pair count, log scale, CSV dump, stage stats,
    throughput hint.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  tokbench run gpt-4o -d sharegpt.json -n 500 --dump-latency-stats

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/tokbench/internal/config"
	"github.com/daryltucker/tokbench/internal/engine"
)

var (
	datasetOverride string
	numPairs        int
	outputOverride  string
	jobsOverride    int
	seedOverride    int64
	logScale        bool
	dumpStats       bool
	stageStats      bool
	tput            bool
	noWarmup        bool
)

var runCmd = &cobra.Command{
	Use:   "run <model-id>",
	Short: "Run the tokenizer benchmark suite",
	Long: `Runs the full benchmark for one tokenizer model:
1. Backends: builds the reference tokenizer and compiles the optimized pipeline around it.
2. Corpus: samples prompt/completion pairs from the dataset (or a synthetic corpus).
3. Sync benchmark: times every prompt through both backends, one request at a time.
4. Async benchmark: drives all prompts through the compiled backend concurrently.
5. Report: prints summary statistics and writes the scatter plot (and optional CSV/JSONL).

The model id is either a model name known to the tokenizer registry (e.g. gpt-4o)
or a raw encoding name (e.g. cl100k_base).`,
	Example: `  # Benchmark with the built-in synthetic corpus
  tokbench run cl100k_base -n 200

  # Sample 1000 pairs from a ShareGPT-style dataset
  tokbench run gpt-4o -d sharegpt.json

  # Throughput hint, CSV dump, log-log plot
  tokbench run gpt-4o -d sharegpt.json --tput --dump-latency-stats --log-scale`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		cfg.Model = args[0]
		if datasetOverride != "" {
			cfg.Dataset = datasetOverride
		}
		if cmd.Flags().Changed("num-pairs") {
			cfg.NumPairs = numPairs
		}
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if cmd.Flags().Changed("jobs") {
			cfg.Jobs = jobsOverride
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedOverride
		}
		if logScale {
			cfg.LogScale = true
		}
		if dumpStats {
			cfg.DumpStats = true
		}
		if stageStats {
			cfg.StageStats = true
		}
		if tput {
			cfg.Hint = "throughput"
		}
		if noWarmup {
			cfg.Warmup = false
		}

		// 3. Execution
		return engine.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&datasetOverride, "dataset", "d", "", "Path to a ShareGPT-style JSON dataset (default: synthetic corpus)")
	runCmd.Flags().IntVarP(&numPairs, "num-pairs", "n", 1000, "Number of prompt/completion pairs to sample")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for the plot and CSV/JSONL artifacts")
	runCmd.Flags().IntVar(&jobsOverride, "jobs", 0, "Number of in-flight async requests (0 = derive from hint)")
	runCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Sampling seed for reproducible runs (0 = wall clock)")
	runCmd.Flags().BoolVar(&logScale, "log-scale", false, "Use log scale for the plot")
	runCmd.Flags().BoolVar(&dumpStats, "dump-latency-stats", false, "Save CSV/JSONL files with per-prompt latency stats")
	runCmd.Flags().BoolVar(&stageStats, "print-stage-stats", false, "Print per-stage timing for the compiled pipeline")
	runCmd.Flags().BoolVar(&tput, "tput", false, "Use the THROUGHPUT performance hint for the async queue")
	runCmd.Flags().BoolVar(&noWarmup, "no-warmup", false, "Skip the warmup rounds before the sync benchmark")
}
