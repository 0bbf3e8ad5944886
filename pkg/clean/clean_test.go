package clean

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "punctuation and digits become spaces",
			input:    "Hello, World! 123\n",
			expected: "Hello World \n",
		},
		{
			name:     "multibyte runes become single spaces",
			input:    "café au lait",
			expected: "caf au lait",
		},
		{
			name:     "space runs collapse per line",
			input:    "a   b\nc  d",
			expected: "a b\nc d",
		},
		{
			name:     "no trailing newline is not invented",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "trailing newline preserved",
			input:    "plain text\n",
			expected: "plain text\n",
		},
		{
			name:     "newlines never collapse",
			input:    "a\n\n\nb\n",
			expected: "a\n\n\nb\n",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.input)
			if got != tc.expected {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World! 123\n",
		"It was a dark and stormy night; the rain fell in torrents.",
		"tabs\tand\r\nwindows line endings",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean is not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanOutputIsTotal(t *testing.T) {
	input := "A1 b2? Cあ\nénd."
	out := Clean(input)
	for _, r := range out {
		allowed := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' || r == '\n'
		if !allowed {
			t.Fatalf("Clean output contains disallowed rune %q in %q", r, out)
		}
	}
	if err := Verify(out); err != nil {
		t.Errorf("Verify rejected cleaned output: %v", err)
	}
}

func TestCleanFileSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(src, []byte("abc!\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := CleanFile(src, dst, false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("CleanFile() error = %v, want ErrExists", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "keep me" {
		t.Errorf("existing output was modified: %q", data)
	}

	if err := CleanFile(src, dst, true); err != nil {
		t.Fatalf("CleanFile() with overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(dst)
	if string(data) != "abc \n" {
		t.Errorf("overwritten output = %q, want %q", data, "abc \n")
	}
}

func TestCleanDir(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "cleaned")

	files := map[string]string{
		"b.txt": "Second file, 2!\n",
		"a.txt": "First file... 1\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := CleanDir(srcDir, dstDir, false, discardLogger())
	if err != nil {
		t.Fatalf("CleanDir() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CleanDir() wrote %d files, want 2", n)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "a_cleaned.txt"))
	if err != nil {
		t.Fatalf("missing cleaned output: %v", err)
	}
	if string(data) != "First file \n" {
		t.Errorf("cleaned a.txt = %q, want %q", data, "First file \n")
	}

	// Second pass without overwrite should skip everything.
	n, err = CleanDir(srcDir, dstDir, false, discardLogger())
	if err != nil {
		t.Fatalf("CleanDir() second pass failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CleanDir() second pass wrote %d files, want 0", n)
	}
}

func TestCleanDirMissingSource(t *testing.T) {
	_, err := CleanDir(filepath.Join(t.TempDir(), "nope"), t.TempDir(), false, discardLogger())
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("CleanDir() error = %v, want ErrNoSource", err)
	}
}

func TestVerify(t *testing.T) {
	if err := Verify("only clean text\nhere\n"); err != nil {
		t.Errorf("Verify rejected clean text: %v", err)
	}
	err := Verify("fine\nbad line 42\n")
	if err == nil {
		t.Fatal("Verify accepted text with digits")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Verify error %q does not name line 2", err)
	}
}

func TestVerifyDir(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("has 1 digit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "b.txt"), []byte("fine text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// a gets a bad cleaned output (digit survived), b is missing entirely.
	if err := os.WriteFile(filepath.Join(dstDir, "a_cleaned.txt"), []byte("has 1 digit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	problems, err := VerifyDir(srcDir, dstDir)
	if err != nil {
		t.Fatalf("VerifyDir() failed: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("VerifyDir() reported %d problems, want 2: %v", len(problems), problems)
	}

	// Fix both and re-verify.
	if err := os.WriteFile(filepath.Join(dstDir, "a_cleaned.txt"), []byte("has  digit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dstDir, "b_cleaned.txt"), []byte("fine text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	problems, err = VerifyDir(srcDir, dstDir)
	if err != nil {
		t.Fatalf("VerifyDir() failed: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("VerifyDir() reported problems for valid outputs: %v", problems)
	}
}
