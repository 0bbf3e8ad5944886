package freq

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
)

// DisplaySymbol maps raw symbols to their CSV display form: a literal
// newline becomes the two-character label `\n` and a single space becomes
// the word "space". Everything else passes through.
func DisplaySymbol(s string) string {
	switch s {
	case "\n":
		return `\n`
	case " ":
		return "space"
	default:
		return s
	}
}

// ParseSymbol reverses DisplaySymbol when reading a CSV back.
func ParseSymbol(s string) string {
	switch s {
	case `\n`:
		return "\n"
	case "space":
		return " "
	default:
		return s
	}
}

// WriteCSV writes the table as rows of (rank, symbol, count, ratio) under a
// header naming the symbol column label (char, ngram, word, ...). The ratio
// is formatted with prec decimal places. The file is written atomically.
func WriteCSV(path string, t Table, label string, prec int) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"rank", label, "count", "ratio"}); err != nil {
		return err
	}
	for _, e := range t.Entries {
		row := []string{
			strconv.Itoa(e.Rank),
			DisplaySymbol(e.Symbol),
			strconv.Itoa(e.Count),
			strconv.FormatFloat(e.Ratio, 'f', prec, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// ReadCSV loads a frequency table previously written by WriteCSV (or by any
// producer of rank,symbol,count,ratio rows). Display labels are mapped back
// to their raw symbols and Total is recomputed as the sum of counts.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 2 {
		return Table{}, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	t := Table{Name: filepath.Base(path)}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		count, err := strconv.Atoi(row[2])
		if err != nil {
			count = 0
		}
		rank, _ := strconv.Atoi(row[0])
		entry := Entry{Rank: rank, Symbol: ParseSymbol(row[1]), Count: count}
		if len(row) > 3 {
			entry.Ratio, _ = strconv.ParseFloat(row[3], 64)
		}
		t.Entries = append(t.Entries, entry)
		t.Total += count
	}
	return t, nil
}
