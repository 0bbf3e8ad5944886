package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"textmill/pkg/clean"
)

var (
	cleanSrc       string
	cleanDst       string
	cleanOverwrite bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean raw text files into their letters-and-spaces form",
	Long: "Reads every .txt file under --src, strips everything but letters, " +
		"spaces and newlines, collapses space runs, and writes each result " +
		"next to its name with a _cleaned suffix under --dst. Existing " +
		"outputs are skipped unless --overwrite is set.",
	Run: func(cmd *cobra.Command, args []string) {
		n, err := clean.CleanDir(cleanSrc, cleanDst, cleanOverwrite, logger)
		if err != nil {
			if errors.Is(err, clean.ErrNoSource) {
				exitInput("clean", err)
			}
			exitErr("clean", err)
		}
		fmt.Printf("cleaned %d file(s) from %s into %s\n", n, cleanSrc, cleanDst)
	},
}

var (
	verifySrc string
	verifyDst string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check cleaned outputs against their sources",
	Long: "Reports source files with a missing cleaned counterpart, cleaned " +
		"files containing disallowed characters, and cleaned files where " +
		"digits survived. Exits 3 when any problem is found.",
	Run: func(cmd *cobra.Command, args []string) {
		problems, err := clean.VerifyDir(verifySrc, verifyDst)
		if err != nil {
			if errors.Is(err, clean.ErrNoSource) {
				exitInput("verify", err)
			}
			exitErr("verify", err)
		}
		if len(problems) > 0 {
			for _, p := range problems {
				_, _ = fmt.Fprintln(os.Stderr, p)
			}
			_, _ = fmt.Fprintf(os.Stderr, "verify: %d problem(s) found\n", len(problems))
			os.Exit(3)
		}
		fmt.Println("verify: all cleaned files pass")
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanSrc, "src", "Unprocessed", "Directory of raw .txt files")
	cleanCmd.Flags().StringVar(&cleanDst, "dst", "examples/cleaned", "Directory for cleaned output files")
	cleanCmd.Flags().BoolVar(&cleanOverwrite, "overwrite", false, "Replace cleaned files that already exist")
	RootCmd.AddCommand(cleanCmd)

	verifyCmd.Flags().StringVar(&verifySrc, "src", "Unprocessed", "Directory of raw .txt files")
	verifyCmd.Flags().StringVar(&verifyDst, "dst", "examples/cleaned", "Directory of cleaned output files")
	RootCmd.AddCommand(verifyCmd)
}
