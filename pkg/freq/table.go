package freq

import (
	"errors"
	"sort"
)

// ErrEmpty is returned when a table is built from, or loaded as, an empty
// distribution.
var ErrEmpty = errors.New("empty frequency table")

// Entry is one ranked row of a frequency table.
type Entry struct {
	Rank   int
	Symbol string
	Count  int
	Ratio  float64
}

// Table is a ranked frequency table. Total is the denominator used for
// ratios; for projected tables (e.g. uppercase-only) it can exceed the sum
// of the entry counts.
type Table struct {
	Name    string
	Total   int
	Entries []Entry
}

// NewTable ranks counts by descending count, breaking ties lexicographically
// by symbol so that equally frequent symbols always order the same way.
// Ratios are computed against total.
func NewTable(name string, counts map[string]int, total int) Table {
	entries := make([]Entry, 0, len(counts))
	for sym, cnt := range counts {
		entries = append(entries, Entry{Symbol: sym, Count: cnt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	for i := range entries {
		entries[i].Rank = i + 1
		if total > 0 {
			entries[i].Ratio = float64(entries[i].Count) / float64(total)
		}
	}
	return Table{Name: name, Total: total, Entries: entries}
}

// Top returns a copy of the table truncated to its first k entries.
// k <= 0 returns the table unchanged.
func (t Table) Top(k int) Table {
	if k <= 0 || k >= len(t.Entries) {
		return t
	}
	top := Table{Name: t.Name, Total: t.Total, Entries: make([]Entry, k)}
	copy(top.Entries, t.Entries[:k])
	return top
}

// Sum returns the sum of all entry counts. For a full (unprojected) table
// this equals Total.
func (t Table) Sum() int {
	sum := 0
	for _, e := range t.Entries {
		sum += e.Count
	}
	return sum
}

// Filter returns a table containing only entries accepted by keep, ranked
// anew but with ratios still computed against the original Total.
func (t Table) Filter(keep func(symbol string) bool) Table {
	counts := make(map[string]int)
	for _, e := range t.Entries {
		if keep(e.Symbol) {
			counts[e.Symbol] = e.Count
		}
	}
	return NewTable(t.Name, counts, t.Total)
}
