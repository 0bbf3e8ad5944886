package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
	"textmill/pkg/freq"
)

var (
	charsSrc    string
	charsOutDir string
	charsDB     string
	charsTop    int
	charsChart  bool
)

var charsCmd = &cobra.Command{
	Use:   "chars",
	Short: "Tabulate single-character frequencies",
	Long: "Counts every character across the cleaned files under --src and " +
		"writes four ranked CSV tables (case-sensitive, case-insensitive, " +
		"uppercase-only, lowercase-only) under --outdir. The same tables are " +
		"recorded in the stats database.",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := corpus.ReadDir(charsSrc)
		if err != nil {
			exitInput("chars", err)
		}
		runes := freq.ExtractRunes(text)
		if len(runes) == 0 {
			exitInput("chars", fmt.Errorf("%w: no countable characters under %s", freq.ErrEmpty, charsSrc))
		}
		total := len(runes)

		isLetter := func(upper bool) func(string) bool {
			return func(sym string) bool {
				rs := []rune(sym)
				if len(rs) != 1 || !unicode.IsLetter(rs[0]) {
					return false
				}
				return unicode.IsUpper(rs[0]) == upper
			}
		}

		sensitive := freq.NewTable("char_case_sensitive", freq.CountRunes(runes), total)
		tables := []freq.Table{
			sensitive,
			freq.NewTable("char_case_insensitive", freq.CountRunes(freq.FoldRunes(runes)), total),
			sensitive.Filter(isLetter(true)),
			sensitive.Filter(isLetter(false)),
		}
		tables[2].Name = "char_uppercase"
		tables[3].Name = "char_lowercase"
		files := []string{
			"char_freq_case_sensitive.csv",
			"char_freq_case_insensitive.csv",
			"char_freq_uppercase.csv",
			"char_freq_lowercase.csv",
		}

		db, store, err := openStore(charsDB)
		if err != nil {
			exitErr("chars", err)
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		for i, t := range tables {
			path := filepath.Join(charsOutDir, files[i])
			if err := freq.WriteCSV(path, t, "char", 6); err != nil {
				exitErr("chars", err)
			}
			if err := store.SaveTable(cmd.Context(), t); err != nil {
				exitErr("chars", err)
			}
			logger.Info("Wrote frequency table", "table", t.Name, "path", path, "symbols", len(t.Entries))
		}

		printTable(tables[0], charsTop, "case-sensitive character frequencies")
		if charsChart {
			freq.RenderChart(os.Stdout, tables[0], charsTop)
		}
	},
}

func init() {
	charsCmd.Flags().StringVar(&charsSrc, "src", "examples/cleaned", "Directory of cleaned text files")
	charsCmd.Flags().StringVar(&charsOutDir, "outdir", "Output/chars", "Directory for the frequency CSVs")
	charsCmd.Flags().StringVar(&charsDB, "db", "Output/stats.db", "Stats database path")
	charsCmd.Flags().IntVar(&charsTop, "top", 50, "Rows to display (CSVs always hold the full table)")
	charsCmd.Flags().BoolVar(&charsChart, "chart", false, "Render a text bar chart of the top rows")
	RootCmd.AddCommand(charsCmd)
}
