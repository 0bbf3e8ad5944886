package markov

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// ErrEmptyCorpus is returned when the corpus is too short to form a single
// context of the requested order. Generation fails immediately; there is no
// retry loop.
var ErrEmptyCorpus = errors.New("corpus too short to build any context")

// CharModel is a character-level Markov model: a mapping from each
// (n-1)-rune context to the multiset of runes observed to follow it.
type CharModel struct {
	order     int // context length, n-1
	followers map[string][]rune
	keys      []string // sorted for deterministic seeded walks
}

// BuildCharModel slides a window of n runes over text and records, for every
// position where the window fits, the leading n-1 runes as a context and the
// final rune as its successor. n must be at least 2.
func BuildCharModel(text string, n int) (*CharModel, error) {
	if n < 2 {
		return nil, fmt.Errorf("invalid ngram size %d: must be at least 2", n)
	}

	runes := []rune(text)
	followers := make(map[string][]rune)
	for i := 0; i+n <= len(runes); i++ {
		key := string(runes[i : i+n-1])
		followers[key] = append(followers[key], runes[i+n-1])
	}

	keys := make([]string, 0, len(followers))
	for k := range followers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &CharModel{order: n - 1, followers: followers, keys: keys}, nil
}

// Order returns the context length (n-1).
func (m *CharModel) Order() int { return m.order }

// Contexts returns the number of distinct contexts in the model.
func (m *CharModel) Contexts() int { return len(m.keys) }

// Followers returns the recorded successors for a context, in observation
// order. The returned slice is shared with the model and must not be
// modified.
func (m *CharModel) Followers(context string) []rune {
	return m.followers[context]
}

// Generate performs a random walk of the requested length. The walk seeds
// from a uniformly random context key and emits it, then repeatedly samples
// uniformly among the trailing context's recorded successors; a context with
// no recorded successors falls back to a uniformly random key and one of its
// successors. An empty model returns ErrEmptyCorpus and no output.
func (m *CharModel) Generate(length int, rng *rand.Rand) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrEmptyCorpus
	}
	if length <= 0 {
		return "", nil
	}

	out := []rune(m.keys[rng.IntN(len(m.keys))])
	for len(out) < length {
		key := string(out[len(out)-m.order:])
		succ := m.followers[key]
		if len(succ) == 0 {
			// Dead end: restart from a random context. Every key has at
			// least one recorded successor by construction.
			succ = m.followers[m.keys[rng.IntN(len(m.keys))]]
		}
		out = append(out, succ[rng.IntN(len(succ))])
	}
	if length < len(out) {
		out = out[:length]
	}
	return string(out), nil
}
