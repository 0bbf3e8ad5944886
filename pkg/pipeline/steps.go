package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Step numbers, in pipeline dependency order.
const (
	StepClean = iota + 1
	StepChars
	StepNGrams
	StepCorpus
	StepScanGenerate
	StepMarkovGenerate
	StepSentences
	stepMax = StepSentences
)

// ParseSteps parses a step selection like "1-6" or "1,2,4" (mixes allowed)
// into a sorted, deduplicated list of step numbers.
func ParseSteps(s string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if a, b, ok := strings.Cut(token, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return nil, fmt.Errorf("invalid step range %q: %w", token, err)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("invalid step range %q: %w", token, err)
			}
			if lo > hi {
				return nil, fmt.Errorf("invalid step range %q: start after end", token)
			}
			for i := lo; i <= hi; i++ {
				seen[i] = struct{}{}
			}
		} else {
			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("invalid step %q: %w", token, err)
			}
			seen[n] = struct{}{}
		}
	}

	steps := make([]int, 0, len(seen))
	for n := range seen {
		steps = append(steps, n)
	}
	sort.Ints(steps)
	return steps, nil
}

// stepArgs builds the argument vector (after the command itself) for one
// pipeline step. Unknown steps return nil and are skipped with a log entry.
func stepArgs(step int, cfg *Config, opts *RunOptions) []string {
	seed := func(args []string) []string {
		if opts.HasSeed {
			return append(args, "--seed", strconv.FormatInt(opts.Seed, 10))
		}
		return args
	}
	chart := func(args []string) []string {
		for _, s := range opts.ChartSteps {
			if s == step {
				return append(args, "--chart")
			}
		}
		return args
	}

	runDir := filepath.Join(cfg.OutputDir, "run")

	switch step {
	case StepClean:
		args := []string{"clean", "--src", cfg.SourceDir, "--dst", cfg.CleanDir}
		if opts.Overwrite {
			args = append(args, "--overwrite")
		}
		return args
	case StepChars:
		return chart([]string{
			"chars", "--src", cfg.CleanDir,
			"--outdir", filepath.Join(cfg.OutputDir, "chars"),
			"--db", cfg.DBPath,
			"--top", strconv.Itoa(opts.Top),
		})
	case StepNGrams:
		return chart([]string{
			"ngrams", "--src", cfg.CleanDir,
			"--outdir", filepath.Join(cfg.OutputDir, "ngrams"),
			"--db", cfg.DBPath,
			"--top", strconv.Itoa(opts.Top),
		})
	case StepCorpus:
		return []string{"corpus", "--src", cfg.CleanDir, "--out", cfg.CorpusPath}
	case StepScanGenerate:
		return []string{
			"generate", "--strategy", "scan", "--ngram", "2", "--length", "200",
			"--corpus", cfg.CorpusPath, "--src", cfg.CleanDir,
			"--out", filepath.Join(runDir, "step5_scan2.txt"),
		}
	case StepMarkovGenerate:
		return seed([]string{
			"generate", "--strategy", "indexed", "--ngram", "2", "--length", "200",
			"--corpus", cfg.CorpusPath, "--src", cfg.CleanDir,
			"--out", filepath.Join(runDir, "step6_markov2.txt"),
		})
	case StepSentences:
		return seed([]string{
			"sentences", "--corpus", cfg.CorpusPath, "--src", cfg.CleanDir,
			"--out", filepath.Join(runDir, "step7_sentences.txt"),
		})
	default:
		return nil
	}
}
