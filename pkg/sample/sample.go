// Package sample draws pseudo-random symbols either from a recorded
// frequency distribution (weighted, with replacement) or uniformly from the
// character positions of a corpus. Both draws take an explicit rand source
// so that seeded runs reproduce byte-identical output.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"textmill/pkg/freq"
)

// ErrEmptyDistribution is returned when there is nothing to draw from:
// an empty corpus, or a table whose counts sum to zero.
var ErrEmptyDistribution = errors.New("empty distribution")

// NewRand returns a seeded deterministic source when seeded is true, and a
// source seeded from the global generator otherwise.
func NewRand(seed int64, seeded bool) *rand.Rand {
	if seeded {
		return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// FromTable draws n symbols independently with replacement from the table's
// distribution; the probability of each symbol is proportional to its
// recorded count. Zero-count entries are never drawn.
func FromTable(t freq.Table, n int, rng *rand.Rand) ([]string, error) {
	cumulative := make([]int, 0, len(t.Entries))
	symbols := make([]string, 0, len(t.Entries))
	sum := 0
	for _, e := range t.Entries {
		if e.Count <= 0 {
			continue
		}
		sum += e.Count
		cumulative = append(cumulative, sum)
		symbols = append(symbols, e.Symbol)
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: table '%s' has no positive counts", ErrEmptyDistribution, t.Name)
	}

	out := make([]string, n)
	for i := range out {
		pick := rng.IntN(sum)
		// Binary search over the cumulative weights.
		lo, hi := 0, len(cumulative)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cumulative[mid] <= pick {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		out[i] = symbols[lo]
	}
	return out, nil
}

// FromText draws n single characters, each chosen independently and
// uniformly at random from the corpus's character positions (sampling with
// replacement).
func FromText(text string, n int, rng *rand.Rand) ([]string, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", ErrEmptyDistribution)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = string(runes[rng.IntN(len(runes))])
	}
	return out, nil
}

// Render formats drawn symbols for output: one per line, or concatenated.
// stripNewlines removes embedded newline characters from concatenated
// output so a draw displays on a single line.
func Render(symbols []string, onePerLine, stripNewlines bool) string {
	if onePerLine {
		return strings.Join(symbols, "\n")
	}
	joined := strings.Join(symbols, "")
	if stripNewlines {
		joined = strings.ReplaceAll(joined, "\n", "")
	}
	return joined
}
