package markov

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"unicode"
)

// DefaultVocabulary is the built-in preferred-vocabulary list used to bias
// word-level generation toward a Conan Doyle register.
var DefaultVocabulary = []string{
	"Holmes", "Watson", "detective", "mystery", "London",
	"crime", "clue", "evidence", "case", "client",
	"deduction", "adventure", "remarked", "observe", "peculiar",
	"extraordinary", "solution", "investigation", "suspect", "villain",
	"inquiry", "exclaimed", "elementary",
}

// LoadVocabulary reads a preferred-vocabulary list from a file, one word per
// line. Blank lines and lines starting with '#' are skipped.
func LoadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return words, nil
}

// WordModel is a word-level Markov model over tokenized text: a mapping from
// each (n-1)-word context to the words observed to follow it.
type WordModel struct {
	order     int
	followers map[string][]string
	keys      []string
}

// BuildWordModel records, for every window of n tokens, the leading n-1
// tokens (joined with single spaces) as a context and the final token as its
// successor. n must be at least 2.
func BuildWordModel(words []string, n int) (*WordModel, error) {
	if n < 2 {
		return nil, fmt.Errorf("invalid ngram size %d: must be at least 2", n)
	}

	followers := make(map[string][]string)
	for i := 0; i+n <= len(words); i++ {
		key := strings.Join(words[i:i+n-1], " ")
		followers[key] = append(followers[key], words[i+n-1])
	}

	keys := make([]string, 0, len(followers))
	for k := range followers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &WordModel{order: n - 1, followers: followers, keys: keys}, nil
}

// Order returns the context length (n-1).
func (m *WordModel) Order() int { return m.order }

// Contexts returns the number of distinct contexts in the model.
func (m *WordModel) Contexts() int { return len(m.keys) }

// Generate walks the model for length tokens, biased toward the preferred
// vocabulary: the first context is drawn uniformly from contexts containing
// at least one preferred word when any exist; at each step selection is
// restricted to preferred successors when the context has any; a context
// with no successors at all falls back to a uniformly random preferred word
// (or, with no vocabulary, to a random context's successor). An empty model
// returns ErrEmptyCorpus.
func (m *WordModel) Generate(length int, preferred []string, rng *rand.Rand) ([]string, error) {
	if len(m.keys) == 0 {
		return nil, ErrEmptyCorpus
	}
	if length <= 0 {
		return nil, nil
	}

	prefSet := make(map[string]struct{}, len(preferred))
	for _, w := range preferred {
		prefSet[w] = struct{}{}
	}

	key := m.pickStart(prefSet, rng)
	out := strings.Split(key, " ")

	for len(out) < length {
		ctx := strings.Join(out[len(out)-m.order:], " ")
		nexts := m.followers[ctx]

		var prefNexts []string
		for _, w := range nexts {
			if _, ok := prefSet[w]; ok {
				prefNexts = append(prefNexts, w)
			}
		}

		var next string
		switch {
		case len(prefNexts) > 0:
			next = prefNexts[rng.IntN(len(prefNexts))]
		case len(nexts) > 0:
			next = nexts[rng.IntN(len(nexts))]
		case len(preferred) > 0:
			next = preferred[rng.IntN(len(preferred))]
		default:
			// No vocabulary to lean on: restart from a random context.
			succ := m.followers[m.keys[rng.IntN(len(m.keys))]]
			next = succ[rng.IntN(len(succ))]
		}
		out = append(out, next)
	}

	if length < len(out) {
		out = out[:length]
	}
	return out, nil
}

// pickStart chooses the initial context: uniformly among contexts containing
// a preferred word when any exist, otherwise uniformly among all contexts.
func (m *WordModel) pickStart(prefSet map[string]struct{}, rng *rand.Rand) string {
	if len(prefSet) > 0 {
		var candidates []string
		for _, key := range m.keys {
			for _, w := range strings.Split(key, " ") {
				if _, ok := prefSet[w]; ok {
					candidates = append(candidates, key)
					break
				}
			}
		}
		if len(candidates) > 0 {
			return candidates[rng.IntN(len(candidates))]
		}
	}
	return m.keys[rng.IntN(len(m.keys))]
}

// FormatSentence joins tokens with spaces, removes the inserted space before
// clause-closing punctuation, and capitalizes the first letter.
func FormatSentence(tokens []string) string {
	s := strings.Join(tokens, " ")
	for _, p := range []string{".", ",", "!", "?"} {
		s = strings.ReplaceAll(s, " "+p, p)
	}
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
