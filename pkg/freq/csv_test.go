package freq

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSymbolLabels(t *testing.T) {
	testCases := []struct {
		raw     string
		display string
	}{
		{"\n", `\n`},
		{" ", "space"},
		{"a", "a"},
		{"th", "th"},
	}
	for _, tc := range testCases {
		if got := DisplaySymbol(tc.raw); got != tc.display {
			t.Errorf("DisplaySymbol(%q) = %q, want %q", tc.raw, got, tc.display)
		}
		if got := ParseSymbol(tc.display); got != tc.raw {
			t.Errorf("ParseSymbol(%q) = %q, want %q", tc.display, got, tc.raw)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	table := NewTable("chars", map[string]int{" ": 5, "\n": 2, "e": 7}, 14)
	path := filepath.Join(t.TempDir(), "out", "chars.csv")

	if err := WriteCSV(path, table, "char", 6); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	if !strings.HasPrefix(content, "rank,char,count,ratio\n") {
		t.Errorf("missing header, got %q", content)
	}
	if !strings.Contains(content, "space") || !strings.Contains(content, `\n`) {
		t.Errorf("display labels missing from csv: %q", content)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	if got.Total != 14 {
		t.Errorf("round-trip total = %d, want 14", got.Total)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("round-trip entries = %d, want 3", len(got.Entries))
	}
	if got.Entries[0].Symbol != "e" || got.Entries[0].Count != 7 {
		t.Errorf("first entry = %+v, want e/7", got.Entries[0])
	}
	if got.Entries[1].Symbol != " " {
		t.Errorf("space label did not parse back, got %q", got.Entries[1].Symbol)
	}
	if got.Entries[2].Symbol != "\n" {
		t.Errorf("newline label did not parse back, got %q", got.Entries[2].Symbol)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("rank,char,count,ratio\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Error("ReadCSV() accepted a header-only csv")
	}
}

func TestRenderChart(t *testing.T) {
	table := NewTable("chars", map[string]int{"a": 10, "b": 5, " ": 1}, 16)
	var sb strings.Builder
	RenderChart(&sb, table, 2)

	out := sb.String()
	if !strings.Contains(out, "a "+strings.Repeat("#", 50)) {
		t.Errorf("top bar not full width:\n%s", out)
	}
	if strings.Contains(out, "space") {
		t.Errorf("Top(2) chart should not include the space entry:\n%s", out)
	}
}
