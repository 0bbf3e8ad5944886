package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/freq"
)

var (
	wordsCorpus string
	wordsSrc    string
	wordsOutDir string
	wordsDB     string
	wordsTop    int
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Tabulate word and word n-gram frequencies",
	Long: "Tokenizes the corpus into words and punctuation, then writes " +
		"ranked CSV tables for single words, word bigrams and word trigrams " +
		"under --outdir, recording each in the stats database. The corpus is " +
		"rebuilt from --src when the blob is missing.",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := corpus.Load(wordsCorpus, wordsSrc)
		if err != nil {
			if errors.Is(err, corpus.ErrNoSource) || errors.Is(err, corpus.ErrEmpty) {
				exitInput("words", err)
			}
			exitErr("words", err)
		}
		tokens := freq.Tokenize(text)
		if len(tokens) == 0 {
			exitInput("words", fmt.Errorf("%w: corpus holds no word tokens", freq.ErrEmpty))
		}

		db, store, err := openStore(wordsDB)
		if err != nil {
			exitErr("words", err)
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		specs := []struct {
			name    string
			label   string
			file    string
			symbols []string
		}{
			{"word", "word", "word_freq.csv", tokens},
			{"word_bigram", "bigram", "word_bigram_freq.csv", freq.WordNGrams(tokens, 2)},
			{"word_trigram", "trigram", "word_trigram_freq.csv", freq.WordNGrams(tokens, 3)},
		}
		for _, spec := range specs {
			if len(spec.symbols) == 0 {
				logger.Warn("Skipping table with no windows", "table", spec.name)
				continue
			}
			t := freq.NewTable(spec.name, freq.CountStrings(spec.symbols), len(spec.symbols))
			if err := freq.WriteCSV(filepath.Join(wordsOutDir, spec.file), t, spec.label, 8); err != nil {
				exitErr("words", err)
			}
			if err := store.SaveTable(cmd.Context(), t); err != nil {
				exitErr("words", err)
			}
			logger.Info("Wrote frequency table", "table", t.Name, "windows", t.Total, "distinct", len(t.Entries))
			printTable(t, wordsTop, spec.name+" frequencies")
		}
	},
}

func init() {
	wordsCmd.Flags().StringVar(&wordsCorpus, "corpus", "Output/ALL_TEXT.txt", "Corpus blob path")
	wordsCmd.Flags().StringVar(&wordsSrc, "src", "examples/cleaned", "Cleaned files used to rebuild a missing corpus")
	wordsCmd.Flags().StringVar(&wordsOutDir, "outdir", "Output/words", "Directory for the frequency CSVs")
	wordsCmd.Flags().StringVar(&wordsDB, "db", "Output/stats.db", "Stats database path")
	wordsCmd.Flags().IntVar(&wordsTop, "top", 20, "Rows to display (CSVs always hold the full table)")
	RootCmd.AddCommand(wordsCmd)
}
