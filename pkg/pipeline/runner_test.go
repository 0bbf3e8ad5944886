package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) *Config {
	cfg := DefaultConfig()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.TimeoutSec = 5
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	return string(data)
}

func TestRunDryRunLogsCommandsOnly(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	logPath, err := r.Run(context.Background(), RunOptions{
		Steps:   []int{StepClean, StepCorpus},
		DryRun:  true,
		Command: []string{"/nonexistent/binary"},
	})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	content := readLog(t, logPath)
	if !strings.Contains(content, "CMD: /nonexistent/binary clean") {
		t.Errorf("log is missing the clean command line:\n%s", content)
	}
	if !strings.Contains(content, "CMD: /nonexistent/binary corpus") {
		t.Errorf("log is missing the corpus command line:\n%s", content)
	}
	if strings.Count(content, "(dry-run)") != 2 {
		t.Errorf("expected two dry-run markers:\n%s", content)
	}
	if strings.Contains(content, "RETURNCODE") {
		t.Errorf("dry run must not execute anything:\n%s", content)
	}
}

func TestRunRecordsOutputAndReturnCode(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	// "true" swallows the step args and exits 0 on any POSIX system.
	logPath, err := r.Run(context.Background(), RunOptions{
		Steps:   []int{StepCorpus},
		Command: []string{"true"},
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(readLog(t, logPath), "RETURNCODE: 0") {
		t.Error("log is missing the zero return code")
	}
}

func TestRunAbortsOnFailure(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	logPath, err := r.Run(context.Background(), RunOptions{
		Steps:   []int{StepClean, StepCorpus},
		Command: []string{"false"},
	})
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Run() error = %v, want StepError", err)
	}
	if stepErr.Step != StepClean {
		t.Errorf("failed step = %d, want %d", stepErr.Step, StepClean)
	}
	if stepErr.ExitCode == 0 {
		t.Error("failed step reported exit code 0")
	}

	content := readLog(t, logPath)
	if !strings.Contains(content, "aborting due to failure") {
		t.Errorf("log is missing the abort notice:\n%s", content)
	}
	if strings.Contains(content, "--- STEP 4 ---") {
		t.Errorf("pipeline ran past the failing step:\n%s", content)
	}
}

func TestRunContinuesOnErrorWhenAsked(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	logPath, err := r.Run(context.Background(), RunOptions{
		Steps:           []int{StepClean, StepCorpus},
		Command:         []string{"false"},
		ContinueOnError: true,
	})
	if err == nil {
		t.Fatal("Run() swallowed the step failure")
	}

	content := readLog(t, logPath)
	if !strings.Contains(content, "--- STEP 4 ---") {
		t.Errorf("pipeline did not continue past the failure:\n%s", content)
	}
	if !strings.Contains(content, "continuing despite failure") {
		t.Errorf("log is missing the continue notice:\n%s", content)
	}
}

func TestRunTimeoutFailsStep(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	_, err := r.Run(context.Background(), RunOptions{
		Steps:   []int{StepCorpus},
		Command: []string{"sh", "-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Run() error = %v, want StepError for the timed-out step", err)
	}
	if !strings.Contains(stepErr.Err.Error(), "timed out") {
		t.Errorf("step error = %v, want timeout", stepErr.Err)
	}
}

func TestRunSkipsUnknownSteps(t *testing.T) {
	r := NewRunner(testConfig(t), testLogger())

	logPath, err := r.Run(context.Background(), RunOptions{
		Steps:   []int{42},
		Command: []string{"true"},
	})
	if err != nil {
		t.Fatalf("Run() failed on an unknown step: %v", err)
	}
	if !strings.Contains(readLog(t, logPath), "unknown step: 42") {
		t.Error("log is missing the unknown-step notice")
	}
}
