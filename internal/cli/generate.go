package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/markov"
)

var (
	genStrategy string
	genNGram    int
	genLength   int
	genCorpus   string
	genSrc      string
	genOut      string
	genStripLF  bool
	genSeed     int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate character-level Markov text from the corpus",
	Long: "Walks an order-(n-1) character chain over the corpus. The indexed " +
		"strategy builds a context-to-followers map once and walks it; the " +
		"scan strategy rescans the corpus from a random offset at every step, " +
		"which favors earlier occurrences. Both yield text whose local " +
		"statistics match the training text.",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := corpus.Load(genCorpus, genSrc)
		if err != nil {
			if errors.Is(err, corpus.ErrNoSource) || errors.Is(err, corpus.ErrEmpty) {
				exitInput("generate", err)
			}
			exitErr("generate", err)
		}
		rng := newRand(cmd, genSeed)

		var out string
		switch genStrategy {
		case "indexed":
			m, err := markov.BuildCharModel(text, genNGram)
			if err != nil {
				exitErr("generate", err)
			}
			logger.Debug("Built character model", "ngram", genNGram, "contexts", m.Contexts())
			out, err = m.Generate(genLength, rng)
			if err != nil {
				exitInput("generate", err)
			}
		case "scan":
			out, err = markov.ScanGenerate(text, genNGram, genLength, rng)
			if errors.Is(err, markov.ErrEmptyCorpus) {
				exitInput("generate", err)
			}
			if err != nil {
				exitErr("generate", err)
			}
		default:
			exitErr("generate", fmt.Errorf("unknown strategy %q: want indexed or scan", genStrategy))
		}

		if genStripLF {
			out = strings.ReplaceAll(out, "\n", " ")
		}
		writeResult(genOut, out)
	},
}

func init() {
	generateCmd.Flags().StringVar(&genStrategy, "strategy", "indexed", "Chain strategy: indexed or scan")
	generateCmd.Flags().IntVar(&genNGram, "ngram", 2, "Window size n; the context is its leading n-1 characters")
	generateCmd.Flags().IntVar(&genLength, "length", 200, "Characters to generate")
	generateCmd.Flags().StringVar(&genCorpus, "corpus", "Output/ALL_TEXT.txt", "Corpus blob path")
	generateCmd.Flags().StringVar(&genSrc, "src", "examples/cleaned", "Cleaned files used to rebuild a missing corpus")
	generateCmd.Flags().StringVar(&genOut, "out", "", "Output file (stdout when empty)")
	generateCmd.Flags().BoolVar(&genStripLF, "no-newline", false, "Replace generated newlines with spaces")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Deterministic RNG seed")
	RootCmd.AddCommand(generateCmd)
}
