package markov

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestBuildCharModelFollowers(t *testing.T) {
	m, err := BuildCharModel("abab", 2)
	if err != nil {
		t.Fatalf("BuildCharModel() failed: %v", err)
	}

	// Windows at i=0..2: "ab", "ba", "ab" -> a is followed by b twice,
	// b is followed by a once.
	if m.Contexts() != 2 {
		t.Fatalf("Contexts() = %d, want 2", m.Contexts())
	}
	if got := string(m.Followers("a")); got != "bb" {
		t.Errorf(`Followers("a") = %q, want "bb"`, got)
	}
	if got := string(m.Followers("b")); got != "a" {
		t.Errorf(`Followers("b") = %q, want "a"`, got)
	}
}

func TestBuildCharModelInvalidOrder(t *testing.T) {
	if _, err := BuildCharModel("abc", 1); err == nil {
		t.Error("BuildCharModel() accepted n=1")
	}
}

func TestGenerateStaysInAlphabet(t *testing.T) {
	corpus := "the cat sat on the mat\nthe cat ran\n"
	m, err := BuildCharModel(corpus, 3)
	if err != nil {
		t.Fatal(err)
	}

	out, err := m.Generate(500, testRand(3))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len([]rune(out)) != 500 {
		t.Fatalf("generated %d runes, want 500", len([]rune(out)))
	}
	for _, r := range out {
		if !strings.ContainsRune(corpus, r) {
			t.Fatalf("generated rune %q not present in the corpus", r)
		}
	}
}

func TestGenerateSingleRuneCorpus(t *testing.T) {
	m, err := BuildCharModel(strings.Repeat("a", 40), 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Generate(100, testRand(1))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if out != strings.Repeat("a", 100) {
		t.Errorf("single-rune corpus generated %q", out)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	m, err := BuildCharModel("to be or not to be that is the question\n", 2)
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.Generate(200, testRand(99))
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Generate(200, testRand(99))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same seed produced different walks")
	}

	third, _ := m.Generate(200, testRand(100))
	if first == third {
		t.Log("different seeds produced identical output (possible but suspicious)")
	}
}

func TestGenerateEmptyCorpusFailsFast(t *testing.T) {
	m, err := BuildCharModel("ab", 3)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Generate(50, testRand(1))
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Generate() error = %v, want ErrEmptyCorpus", err)
	}
	if out != "" {
		t.Errorf("Generate() on empty model returned %q, want empty output", out)
	}
}

func TestGenerateShorterThanContext(t *testing.T) {
	m, err := BuildCharModel("abcabc", 3)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Generate(1, testRand(5))
	if err != nil {
		t.Fatal(err)
	}
	if len([]rune(out)) != 1 {
		t.Errorf("Generate(1) returned %q, want exactly one rune", out)
	}
}
