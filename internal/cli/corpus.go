package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textmill/pkg/corpus"
)

var (
	corpusSrc string
	corpusOut string
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Concatenate cleaned files into the flat training corpus",
	Long: "Joins every *_cleaned.txt under --src, in filename order, into a " +
		"single blob at --out. Rebuilding with unchanged inputs produces " +
		"identical content.",
	Run: func(cmd *cobra.Command, args []string) {
		n, err := corpus.Build(corpusSrc, corpusOut)
		if err != nil {
			if errors.Is(err, corpus.ErrNoSource) || errors.Is(err, corpus.ErrEmpty) {
				exitInput("corpus", err)
			}
			exitErr("corpus", err)
		}
		fmt.Printf("wrote %d characters to %s\n", n, corpusOut)
	},
}

func init() {
	corpusCmd.Flags().StringVar(&corpusSrc, "src", "examples/cleaned", "Directory of cleaned text files")
	corpusCmd.Flags().StringVar(&corpusOut, "out", "Output/ALL_TEXT.txt", "Corpus blob path")
	RootCmd.AddCommand(corpusCmd)
}
