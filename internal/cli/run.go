package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"textmill/pkg/pipeline"
)

var (
	runConfig      string
	runSteps       string
	runCharts      string
	runTop         int
	runNoOverwrite bool
	runDryRun      bool
	runContinue    bool
	runTimeout     int
	runSeed        int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline, step by step",
	Long: "Executes the selected pipeline steps in order, each as a child " +
		"process of this binary, and appends every command line, its output " +
		"and its exit code to a timestamped log file. Steps:\n" +
		"  1 clean   2 chars   3 ngrams   4 corpus\n" +
		"  5 generate (scan)   6 generate (indexed)   7 sentences",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := pipeline.LoadConfig(runConfig)
		if err != nil {
			exitErr("run", err)
		}

		steps, err := pipeline.ParseSteps(runSteps)
		if err != nil {
			exitErr("run", err)
		}
		var chartSteps []int
		if runCharts != "" {
			chartSteps, err = pipeline.ParseSteps(runCharts)
			if err != nil {
				exitErr("run", err)
			}
		}

		opts := pipeline.RunOptions{
			Steps:           steps,
			ChartSteps:      chartSteps,
			Top:             runTop,
			Overwrite:       !runNoOverwrite,
			DryRun:          runDryRun,
			ContinueOnError: runContinue,
			Seed:            runSeed,
			HasSeed:         cmd.Flags().Changed("seed"),
			Timeout:         time.Duration(runTimeout) * time.Second,
		}

		runner := pipeline.NewRunner(cfg, logger)
		logPath, err := runner.Run(cmd.Context(), opts)
		if logPath != "" {
			fmt.Printf("run log: %s\n", logPath)
		}
		if err != nil {
			var stepErr *pipeline.StepError
			if errors.As(err, &stepErr) {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", stepErr)
				if stepErr.ExitCode > 0 {
					os.Exit(stepErr.ExitCode)
				}
				os.Exit(1)
			}
			exitErr("run", err)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfig, "config", "textmill.json", "Pipeline config file (created with defaults when missing)")
	runCmd.Flags().StringVar(&runSteps, "steps", "1-7", "Steps to run, e.g. 1-6 or 1,2,4")
	runCmd.Flags().StringVar(&runCharts, "chart-steps", "2,3", "Steps that should also render charts (empty disables)")
	runCmd.Flags().IntVar(&runTop, "top", 0, "Override the configured top-N for table steps")
	runCmd.Flags().BoolVar(&runNoOverwrite, "no-overwrite", false, "Keep existing cleaned files in the clean step")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Log the commands without executing them")
	runCmd.Flags().BoolVar(&runContinue, "continue-on-error", false, "Keep going past a failed step")
	runCmd.Flags().IntVar(&runTimeout, "timeout", 0, "Per-step timeout in seconds (config default when 0)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Deterministic RNG seed passed to the generator steps")
	RootCmd.AddCommand(runCmd)
}
