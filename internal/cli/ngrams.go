package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/freq"
)

var (
	ngramsSrc           string
	ngramsOutDir        string
	ngramsDB            string
	ngramsTop           int
	ngramsChart         bool
	ngramsCaseSensitive bool
)

var ngramsCmd = &cobra.Command{
	Use:   "ngrams",
	Short: "Tabulate character bigram and trigram frequencies",
	Long: "Slides 2- and 3-character windows over the cleaned files under " +
		"--src (case-folded unless --case-sensitive) and writes full and " +
		"top-N ranked CSV tables under --outdir, recording the full tables " +
		"in the stats database.",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := corpus.ReadDir(ngramsSrc)
		if err != nil {
			exitInput("ngrams", err)
		}
		runes := freq.ExtractRunes(text)
		if !ngramsCaseSensitive {
			runes = freq.FoldRunes(runes)
		}

		db, store, err := openStore(ngramsDB)
		if err != nil {
			exitErr("ngrams", err)
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		for _, spec := range []struct {
			n    int
			name string
		}{{2, "bigram"}, {3, "trigram"}} {
			grams := freq.NGrams(runes, spec.n)
			if len(grams) == 0 {
				exitInput("ngrams", fmt.Errorf("%w: input shorter than %d characters", freq.ErrEmpty, spec.n))
			}
			t := freq.NewTable(spec.name, freq.CountStrings(grams), len(grams))

			full := filepath.Join(ngramsOutDir, spec.name+"_freq.csv")
			if err := freq.WriteCSV(full, t, "ngram", 6); err != nil {
				exitErr("ngrams", err)
			}
			if ngramsTop > 0 {
				top := filepath.Join(ngramsOutDir, fmt.Sprintf("%s_freq_top%d.csv", spec.name, ngramsTop))
				if err := freq.WriteCSV(top, t.Top(ngramsTop), "ngram", 6); err != nil {
					exitErr("ngrams", err)
				}
			}
			if err := store.SaveTable(cmd.Context(), t); err != nil {
				exitErr("ngrams", err)
			}
			logger.Info("Wrote frequency table", "table", t.Name, "windows", t.Total, "distinct", len(t.Entries))

			printTable(t, ngramsTop, spec.name+" frequencies")
			if ngramsChart {
				freq.RenderChart(os.Stdout, t, ngramsTop)
			}
		}
	},
}

func init() {
	ngramsCmd.Flags().StringVar(&ngramsSrc, "src", "examples/cleaned", "Directory of cleaned text files")
	ngramsCmd.Flags().StringVar(&ngramsOutDir, "outdir", "Output/ngrams", "Directory for the frequency CSVs")
	ngramsCmd.Flags().StringVar(&ngramsDB, "db", "Output/stats.db", "Stats database path")
	ngramsCmd.Flags().IntVar(&ngramsTop, "top", 50, "Rows in the top-N CSVs and on screen")
	ngramsCmd.Flags().BoolVar(&ngramsChart, "chart", false, "Render a text bar chart of the top rows")
	ngramsCmd.Flags().BoolVar(&ngramsCaseSensitive, "case-sensitive", false, "Count without case folding")
	RootCmd.AddCommand(ngramsCmd)
}
