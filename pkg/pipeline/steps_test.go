package pipeline

import (
	"reflect"
	"testing"
)

func TestParseSteps(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []int
		expectErr bool
	}{
		{"range", "1-6", []int{1, 2, 3, 4, 5, 6}, false},
		{"list", "1,2,4", []int{1, 2, 4}, false},
		{"mixed and unordered", "4, 1-2, 2", []int{1, 2, 4}, false},
		{"single", "3", []int{3}, false},
		{"empty tokens ignored", "1,,2,", []int{1, 2}, false},
		{"backwards range", "5-2", nil, true},
		{"garbage", "one", nil, true},
		{"garbage range", "1-x", nil, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSteps(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Errorf("ParseSteps(%q) accepted invalid input: %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSteps(%q) failed: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ParseSteps(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestStepArgs(t *testing.T) {
	cfg := DefaultConfig()
	opts := &RunOptions{Top: 30, Overwrite: true, ChartSteps: []int{StepChars}, Seed: 7, HasSeed: true}

	clean := stepArgs(StepClean, cfg, opts)
	if clean[0] != "clean" || !contains(clean, "--overwrite") {
		t.Errorf("clean args = %v", clean)
	}

	chars := stepArgs(StepChars, cfg, opts)
	if !contains(chars, "--chart") {
		t.Errorf("chars step should carry --chart when selected: %v", chars)
	}

	ngrams := stepArgs(StepNGrams, cfg, opts)
	if contains(ngrams, "--chart") {
		t.Errorf("ngrams step should not carry --chart here: %v", ngrams)
	}

	markov := stepArgs(StepMarkovGenerate, cfg, opts)
	if !contains(markov, "--seed") || !contains(markov, "7") {
		t.Errorf("markov step should pass the seed through: %v", markov)
	}

	if got := stepArgs(99, cfg, opts); got != nil {
		t.Errorf("unknown step produced args: %v", got)
	}
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
