// Package pipeline sequences the textmill stages by shelling out to each as
// an external process, with step selection, dry-run, and continue-on-failure
// options. Every invocation's command line, captured output, and exit code
// are appended to a timestamped log file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// RunOptions selects and parameterizes the steps of one pipeline run.
type RunOptions struct {
	Steps           []int
	ChartSteps      []int
	Top             int
	Overwrite       bool
	DryRun          bool
	ContinueOnError bool
	Seed            int64
	HasSeed         bool
	Timeout         time.Duration
	// Command is the argv prefix each step is appended to; defaults to the
	// running executable.
	Command []string
}

// StepError reports a failed step along with the child's exit code, so the
// orchestrator can propagate it.
type StepError struct {
	Step     int
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d failed (rc=%d): %v", e.Step, e.ExitCode, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes pipeline steps as external processes.
type Runner struct {
	cfg    *Config
	logger *slog.Logger
}

// NewRunner returns a Runner over the given configuration.
func NewRunner(cfg *Config, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Run executes the selected steps in ascending order, logging each command
// line, its combined output, and its exit code to a timestamped file under
// the configured log directory. It returns the path of that log file. The
// first failing step aborts the rest unless ContinueOnError is set; a
// timed-out step counts as failed.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (string, error) {
	if len(opts.Command) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		opts.Command = []string{exe}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Duration(r.cfg.TimeoutSec) * time.Second
	}
	if opts.Top <= 0 {
		opts.Top = r.cfg.Top
	}

	if err := os.MkdirAll(r.cfg.LogDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	logPath := filepath.Join(r.cfg.LogDir, fmt.Sprintf("run_%s.log", time.Now().Format("20060102_150405")))
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	_, _ = fmt.Fprintf(logFile, "run start: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(logFile, "steps=%v chart_steps=%v top=%d overwrite=%v dry_run=%v\n",
		opts.Steps, opts.ChartSteps, opts.Top, opts.Overwrite, opts.DryRun)

	var firstErr error
	for _, step := range opts.Steps {
		_, _ = fmt.Fprintf(logFile, "\n--- STEP %d ---\n", step)

		args := stepArgs(step, r.cfg, &opts)
		if args == nil {
			_, _ = fmt.Fprintf(logFile, "unknown step: %d\n", step)
			r.logger.Warn("Skipping unknown step", "step", step)
			continue
		}

		argv := append(append([]string(nil), opts.Command...), args...)
		cmdLine := strings.Join(argv, " ")
		_, _ = fmt.Fprintf(logFile, "CMD: %s\n", cmdLine)
		r.logger.Info("Running step", "step", step, "cmd", cmdLine)

		if opts.DryRun {
			_, _ = fmt.Fprintln(logFile, "(dry-run)")
			continue
		}

		stepCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		cmd := exec.CommandContext(stepCtx, argv[0], argv[1:]...)
		output, err := cmd.CombinedOutput()
		timedOut := errors.Is(stepCtx.Err(), context.DeadlineExceeded)
		cancel()

		_, _ = logFile.Write(output)

		rc := 0
		if err != nil {
			rc = 1
			if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() > 0 {
				rc = cmd.ProcessState.ExitCode()
			}
		}
		_, _ = fmt.Fprintf(logFile, "RETURNCODE: %d\n", rc)
		if timedOut {
			_, _ = fmt.Fprintf(logFile, "STEP %d timed out after %s\n", step, opts.Timeout)
			err = fmt.Errorf("timed out after %s", opts.Timeout)
		}

		if err != nil {
			_, _ = fmt.Fprintf(logFile, "STEP %d failed (rc=%d)\n", step, rc)
			r.logger.Error("Step failed", "step", step, "rc", rc, "error", err, "log", logPath)
			stepErr := &StepError{Step: step, ExitCode: rc, Err: err}
			if !opts.ContinueOnError {
				_, _ = fmt.Fprintln(logFile, "aborting due to failure")
				return logPath, stepErr
			}
			_, _ = fmt.Fprintln(logFile, "continuing despite failure as requested")
			if firstErr == nil {
				firstErr = stepErr
			}
		}
	}

	_, _ = fmt.Fprintf(logFile, "\nrun finished: %s\n", time.Now().Format(time.RFC3339))
	return logPath, firstErr
}
