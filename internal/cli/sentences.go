package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/freq"
	"textmill/pkg/markov"
)

var (
	sentCorpus string
	sentSrc    string
	sentNGram  int
	sentLength int
	sentNum    int
	sentVocab  string
	sentOut    string
	sentSeed   int64
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Generate word-level Markov sentences with a vocabulary bias",
	Long: "Tokenizes the corpus into words and punctuation, builds an " +
		"order-(n-1) word chain, and generates sentences biased toward a " +
		"preferred vocabulary: starts prefer contexts containing a preferred " +
		"word, and each step prefers preferred successors when the context " +
		"offers any. Output is lightly formatted (no space before closing " +
		"punctuation, capitalized first letter).",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := corpus.Load(sentCorpus, sentSrc)
		if err != nil {
			if errors.Is(err, corpus.ErrNoSource) || errors.Is(err, corpus.ErrEmpty) {
				exitInput("sentences", err)
			}
			exitErr("sentences", err)
		}

		vocab := markov.DefaultVocabulary
		if sentVocab != "" {
			vocab, err = markov.LoadVocabulary(sentVocab)
			if err != nil {
				exitErr("sentences", err)
			}
		}

		tokens := freq.Tokenize(text)
		m, err := markov.BuildWordModel(tokens, sentNGram)
		if err != nil {
			exitErr("sentences", err)
		}
		logger.Debug("Built word model", "ngram", sentNGram, "contexts", m.Contexts(), "vocabulary", len(vocab))

		rng := newRand(cmd, sentSeed)
		lines := make([]string, 0, sentNum)
		for i := 0; i < sentNum; i++ {
			words, err := m.Generate(sentLength, vocab, rng)
			if err != nil {
				if errors.Is(err, markov.ErrEmptyCorpus) {
					exitInput("sentences", err)
				}
				exitErr("sentences", err)
			}
			lines = append(lines, markov.FormatSentence(words))
		}

		writeResult(sentOut, strings.Join(lines, "\n"))
	},
}

func init() {
	sentencesCmd.Flags().StringVar(&sentCorpus, "corpus", "Output/ALL_TEXT.txt", "Corpus blob path")
	sentencesCmd.Flags().StringVar(&sentSrc, "src", "examples/cleaned", "Cleaned files used to rebuild a missing corpus")
	sentencesCmd.Flags().IntVar(&sentNGram, "ngram", 3, "Window size n; the context is its leading n-1 words")
	sentencesCmd.Flags().IntVar(&sentLength, "length", 20, "Words per sentence")
	sentencesCmd.Flags().IntVar(&sentNum, "num", 5, "Number of sentences")
	sentencesCmd.Flags().StringVar(&sentVocab, "vocab", "", "Preferred-vocabulary file, one word per line (built-in list when empty)")
	sentencesCmd.Flags().StringVar(&sentOut, "out", "", "Output file (stdout when empty)")
	sentencesCmd.Flags().Int64Var(&sentSeed, "seed", 0, "Deterministic RNG seed")
	RootCmd.AddCommand(sentencesCmd)
}
