// Package clean strips raw text down to the Latin alphabet, spaces, and
// newlines, and verifies that previously cleaned files still honor that
// contract. Cleaning is idempotent: running it over already-clean text is
// a byte-for-byte no-op.
package clean

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
)

// Suffix is appended to the basename of every cleaned file.
const Suffix = "_cleaned"

var (
	// ErrExists is returned when a destination file already exists and
	// overwriting was not requested. Callers treat it as a skip, not a failure.
	ErrExists = errors.New("output already exists")

	// ErrNoSource is returned when the source directory is missing.
	ErrNoSource = errors.New("source directory not found")

	reDisallowed = regexp.MustCompile(`[^A-Za-z \n]`)
	reSpaceRuns  = regexp.MustCompile(` {2,}`)
	reDigits     = regexp.MustCompile(`[0-9]`)
)

// Clean replaces every rune outside [A-Za-z \n] with a single space and
// collapses runs of two or more spaces within each line. A single trailing
// newline is preserved iff the input ended with one.
func Clean(text string) string {
	s := reDisallowed.ReplaceAllString(text, " ")

	hadNewline := strings.HasSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = reSpaceRuns.ReplaceAllString(line, " ")
	}

	out := strings.Join(lines, "\n")
	if hadNewline {
		out += "\n"
	}
	return out
}

// CleanFile cleans src and writes the result to dst atomically. If dst
// already exists and overwrite is false, it returns ErrExists without
// touching the file.
func CleanFile(src, dst string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	cleaned := Clean(string(data))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := atomic.WriteFile(dst, strings.NewReader(cleaned)); err != nil {
		return fmt.Errorf("failed to write cleaned file: %w", err)
	}
	return nil
}

// DstName returns the cleaned-output filename for a source filename,
// e.g. "study.txt" -> "study_cleaned.txt".
func DstName(srcName string) string {
	stem := strings.TrimSuffix(srcName, filepath.Ext(srcName))
	return stem + Suffix + ".txt"
}

// CleanDir cleans every *.txt file in srcDir (sorted by name) into dstDir.
// Existing outputs are skipped with a notice unless overwrite is set.
// It returns the number of files written. A missing srcDir is fatal; an
// empty one is not.
func CleanDir(srcDir, dstDir string, overwrite bool, logger *slog.Logger) (int, error) {
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNoSource, srcDir)
	}

	matches, err := filepath.Glob(filepath.Join(srcDir, "*.txt"))
	if err != nil {
		return 0, fmt.Errorf("failed to list source files: %w", err)
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		logger.Warn("No .txt files found in source directory", "src", srcDir)
		return 0, nil
	}

	written := 0
	for _, src := range matches {
		dst := filepath.Join(dstDir, DstName(filepath.Base(src)))
		err := CleanFile(src, dst, overwrite)
		if errors.Is(err, ErrExists) {
			logger.Info("Skipping existing output", "dst", dst)
			continue
		}
		if err != nil {
			return written, err
		}
		fi, _ := os.Stat(dst)
		logger.Info("Wrote cleaned file", "dst", dst, "bytes", fi.Size())
		written++
	}
	return written, nil
}

// Verify checks that every rune in text belongs to the allowed set
// {A-Z, a-z, space, newline}. On failure it reports the first offending
// line and the distinct bad runes on it.
func Verify(text string) error {
	if !reDisallowed.MatchString(text) {
		return nil
	}
	for i, line := range strings.Split(text, "\n") {
		bad := reDisallowed.FindAllString(line, -1)
		if len(bad) == 0 {
			continue
		}
		seen := make(map[string]struct{})
		var distinct []string
		for _, b := range bad {
			if _, ok := seen[b]; !ok {
				seen[b] = struct{}{}
				distinct = append(distinct, b)
			}
		}
		sort.Strings(distinct)
		return fmt.Errorf("line %d contains disallowed characters %q", i+1, distinct)
	}
	return errors.New("disallowed characters present")
}

// VerifyDir checks that every *.txt source in srcDir has a cleaned
// counterpart in dstDir, that each counterpart passes Verify, and that no
// digits survived cleaning. It returns one message per problem found.
func VerifyDir(srcDir, dstDir string) ([]string, error) {
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, srcDir)
	}
	if info, err := os.Stat(dstDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, dstDir)
	}

	matches, err := filepath.Glob(filepath.Join(srcDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no .txt files in %s", ErrNoSource, srcDir)
	}

	var problems []string
	for _, src := range matches {
		expected := filepath.Join(dstDir, DstName(filepath.Base(src)))
		data, err := os.ReadFile(expected)
		if err != nil {
			problems = append(problems, fmt.Sprintf("missing cleaned output: %s", expected))
			continue
		}
		if err := Verify(string(data)); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", expected, err))
			continue
		}
		srcData, err := os.ReadFile(src)
		if err == nil && reDigits.Match(srcData) && reDigits.Match(data) {
			problems = append(problems, fmt.Sprintf("%s: digits survived cleaning", expected))
		}
	}
	return problems, nil
}
