// Package corpus builds and loads the flat training text: the concatenation
// of every cleaned file in a directory, sorted by filename. The blob is the
// single input for all downstream samplers and generators.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/natefinch/atomic"
)

var (
	// ErrNoSource is returned when the cleaned-file directory is missing.
	ErrNoSource = errors.New("cleaned directory not found")

	// ErrEmpty is returned when no cleaned content could be gathered.
	ErrEmpty = errors.New("empty corpus")
)

// ReadDir concatenates every *_cleaned.txt in srcDir in filename order and
// returns the combined text. Missing directory is ErrNoSource; a directory
// with no cleaned files yields an empty string and no error.
func ReadDir(srcDir string) (string, error) {
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoSource, srcDir)
	}

	matches, err := filepath.Glob(filepath.Join(srcDir, "*_cleaned.txt"))
	if err != nil {
		return "", fmt.Errorf("failed to list cleaned files: %w", err)
	}
	sort.Strings(matches)

	var sb strings.Builder
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

// Build concatenates the cleaned files under srcDir into outPath and returns
// the number of characters written. Rebuilding with unchanged inputs
// overwrites the blob with identical content.
func Build(srcDir, outPath string) (int, error) {
	text, err := ReadDir(srcDir)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, fmt.Errorf("%w: no cleaned files under %s", ErrEmpty, srcDir)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := atomic.WriteFile(outPath, strings.NewReader(text)); err != nil {
		return 0, fmt.Errorf("failed to write corpus: %w", err)
	}
	return utf8.RuneCountInString(text), nil
}

// Load reads the corpus blob at path. When the blob is absent it is rebuilt
// on demand from srcDir. An existing-but-empty blob is ErrEmpty.
func Load(path, srcDir string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) == 0 {
			return "", fmt.Errorf("%w: %s", ErrEmpty, path)
		}
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read corpus: %w", err)
	}

	if _, err := Build(srcDir, path); err != nil {
		return "", err
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read rebuilt corpus: %w", err)
	}
	return string(data), nil
}
