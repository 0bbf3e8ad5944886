package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/freq"
	"textmill/pkg/sample"
)

var (
	sampleMode    string
	sampleCSV     string
	sampleDB      string
	sampleTable   string
	sampleCorpus  string
	sampleSrc     string
	sampleCount   int
	sampleOut     string
	sampleLines   bool
	sampleStripLF bool
	sampleSeed    int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw random symbols from a distribution or the corpus",
	Long: "In dist mode, draws symbols weighted by a recorded frequency " +
		"table, read either from a CSV (--csv) or from the stats database " +
		"(--db with --table). In text mode, draws characters uniformly from " +
		"the corpus's positions. Draws are independent, with replacement.",
	Run: func(cmd *cobra.Command, args []string) {
		rng := newRand(cmd, sampleSeed)

		var symbols []string
		switch sampleMode {
		case "dist":
			var t freq.Table
			var err error
			if sampleTable != "" {
				db, store, serr := openStore(sampleDB)
				if serr != nil {
					exitErr("sample", serr)
				}
				t, err = store.LoadTable(cmd.Context(), sampleTable)
				store.Close()
				_ = db.Close()
			} else {
				t, err = freq.ReadCSV(sampleCSV)
			}
			if err != nil {
				if errors.Is(err, freq.ErrEmpty) {
					exitInput("sample", err)
				}
				exitErr("sample", err)
			}
			symbols, err = sample.FromTable(t, sampleCount, rng)
			if err != nil {
				exitInput("sample", err)
			}
		case "text":
			text, err := corpus.Load(sampleCorpus, sampleSrc)
			if err != nil {
				if errors.Is(err, corpus.ErrNoSource) || errors.Is(err, corpus.ErrEmpty) {
					exitInput("sample", err)
				}
				exitErr("sample", err)
			}
			symbols, err = sample.FromText(text, sampleCount, rng)
			if err != nil {
				exitInput("sample", err)
			}
		default:
			exitErr("sample", fmt.Errorf("unknown mode %q: want dist or text", sampleMode))
		}

		writeResult(sampleOut, sample.Render(symbols, sampleLines, sampleStripLF))
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleMode, "mode", "dist", "Sampling mode: dist or text")
	sampleCmd.Flags().StringVar(&sampleCSV, "csv", "Output/chars/char_freq_case_sensitive.csv", "Frequency CSV to draw from in dist mode")
	sampleCmd.Flags().StringVar(&sampleDB, "db", "Output/stats.db", "Stats database path")
	sampleCmd.Flags().StringVar(&sampleTable, "table", "", "Stored table name to draw from instead of a CSV")
	sampleCmd.Flags().StringVar(&sampleCorpus, "corpus", "Output/ALL_TEXT.txt", "Corpus blob path for text mode")
	sampleCmd.Flags().StringVar(&sampleSrc, "src", "examples/cleaned", "Cleaned files used to rebuild a missing corpus")
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 100, "Number of symbols to draw")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "", "Output file (stdout when empty)")
	sampleCmd.Flags().BoolVar(&sampleLines, "lines", false, "One symbol per line")
	sampleCmd.Flags().BoolVar(&sampleStripLF, "no-newline", false, "Strip drawn newline characters from concatenated output")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Deterministic RNG seed")
	RootCmd.AddCommand(sampleCmd)
}
