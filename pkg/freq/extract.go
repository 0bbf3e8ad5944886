package freq

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reSpaceRuns = regexp.MustCompile(` {2,}`)
	reWordToken = regexp.MustCompile(`\b\w+\b|[.,!?;:\-']`)
)

// NormalizeSpaces collapses runs of two or more spaces within each line,
// leaving newlines intact and preserving a trailing newline if present.
func NormalizeSpaces(text string) string {
	hadNewline := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = reSpaceRuns.ReplaceAllString(line, " ")
	}
	out := strings.Join(lines, "\n")
	if hadNewline {
		out += "\n"
	}
	return out
}

// ExtractRunes normalizes spacing and returns the sequence of allowed runes
// (A-Z, a-z, space, newline) in order. Anything else is dropped.
func ExtractRunes(text string) []rune {
	text = NormalizeSpaces(text)
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' || r == '\n' {
			out = append(out, r)
		}
	}
	return out
}

// FoldRunes lowercases letters in place-preserving order; spaces and
// newlines pass through untouched.
func FoldRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// CountRunes tallies each rune as a single-character symbol.
func CountRunes(runes []rune) map[string]int {
	counts := make(map[string]int)
	for _, r := range runes {
		counts[string(r)]++
	}
	return counts
}

// NGrams slides a window of width n with step 1 over the rune sequence and
// returns every window as a string. The window does not wrap; documents
// concatenated upstream may legitimately contribute windows spanning the
// join boundary.
func NGrams(runes []rune, n int) []string {
	if n <= 0 || len(runes) < n {
		return nil
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// Tokenize splits text into word tokens (maximal \w+ runs) and individual
// punctuation tokens from the fixed set . , ! ? ; : - '
func Tokenize(text string) []string {
	return reWordToken.FindAllString(text, -1)
}

// WordNGrams returns every n-word window joined with single spaces.
func WordNGrams(words []string, n int) []string {
	if n <= 0 || len(words) < n {
		return nil
	}
	grams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}
	return grams
}

// CountStrings tallies arbitrary string symbols (words, phrases, n-grams).
func CountStrings(symbols []string) map[string]int {
	counts := make(map[string]int)
	for _, s := range symbols {
		counts[s]++
	}
	return counts
}
