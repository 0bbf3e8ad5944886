// Package cli implements the textmill CLI commands.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"textmill/pkg/freq"
	"textmill/pkg/sample"
)

var (
	logLevel string
	logger   *slog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "textmill",
	Short: "Clean text, tabulate frequency statistics, and generate pseudo-random text",
	Long: "A pipeline of independent subcommands that clean raw text files, " +
		"tabulate character and word n-gram frequencies, and generate " +
		"pseudo-random text from the resulting statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch strings.ToLower(logLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

// exitErr reports a failure and exits with code 1.
func exitErr(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// exitInput reports a missing input path or empty derived content and exits
// with code 2, the contract shared by every stage.
func exitInput(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(2)
}

// openStore opens (creating if needed) the stats database and prepares a
// frequency table store over it. The caller must close both.
func openStore(dbPath string) (*sql.DB, *freq.Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := freq.OpenDB(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stats database: %w", err)
	}
	if err := freq.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up stats schema: %w", err)
	}
	store, err := freq.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare stats store: %w", err)
	}
	store.SetLogger(logger)
	return db, store, nil
}

// newRand builds the generator RNG: deterministic when the seed flag was
// set, otherwise randomly seeded.
func newRand(cmd *cobra.Command, seed int64) *rand.Rand {
	return sample.NewRand(seed, cmd.Flags().Changed("seed"))
}

// writeResult sends generated content to a file (atomically) or, with an
// empty path, to stdout.
func writeResult(path, content string) {
	if path == "" {
		fmt.Println(content)
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			exitErr("create output directory", err)
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		exitErr("write output", err)
	}
	logger.Info("Saved result", "path", path, "bytes", len(content))
}

// printTable writes the top k rows of a ranked table to stdout.
func printTable(t freq.Table, k int, title string) {
	fmt.Println(title)
	fmt.Printf("total symbols: %d\n", t.Total)
	fmt.Println("rank\tsymbol\tcount\tratio")
	for _, e := range t.Top(k).Entries {
		fmt.Printf("%d\t%s\t%d\t%.6f\n", e.Rank, freq.DisplaySymbol(e.Symbol), e.Count, e.Ratio)
	}
}
