package markov

import (
	"fmt"
	"math/rand/v2"
)

// ScanGenerate synthesizes text without pre-indexing the corpus. Each step
// searches the raw rune sequence for the current (n-1)-rune context starting
// at a random offset, wrapping to the start if nothing is found before the
// end, and appends the rune immediately following the match. When the
// context occurs nowhere with a following rune, it falls back to a uniformly
// random corpus position with room and appends the rune n-1 past it.
//
// Every step costs O(corpus length); prefer CharModel for non-trivial
// corpora. Unlike the indexed walk, revisits are weighted toward whichever
// match the forward scan happens to find first.
func ScanGenerate(text string, n, length int, rng *rand.Rand) (string, error) {
	if n < 2 {
		return "", fmt.Errorf("invalid ngram size %d: must be at least 2", n)
	}

	runes := []rune(text)
	m := len(runes)

	if m < n {
		return "", ErrEmptyCorpus
	}
	if length <= 0 {
		return "", nil
	}

	// Seed: a random window of n runes.
	k := rng.IntN(m - n + 1)
	out := append([]rune(nil), runes[k:k+n]...)

	for len(out) < length {
		ctx := out[len(out)-(n-1):]

		idx := indexRunesFrom(runes, ctx, rng.IntN(m))
		if idx < 0 || idx+(n-1) >= m {
			idx = indexRunesFrom(runes, ctx, 0)
		}

		if idx >= 0 && idx+(n-1) < m {
			out = append(out, runes[idx+n-1])
		} else {
			// No usable match anywhere: random position with room.
			fk := rng.IntN(m - n + 1)
			out = append(out, runes[fk+n-1])
		}
	}

	if length < len(out) {
		out = out[:length]
	}
	return string(out), nil
}

// indexRunesFrom returns the index of the first occurrence of needle in
// haystack at or after start, or -1.
func indexRunesFrom(haystack, needle []rune, start int) int {
	for i := start; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
