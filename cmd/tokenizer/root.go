package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags shared by every subcommand.
	vocabPath   string
	patternName string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tokenizer",
	Short: "A byte-pair-encoding tokenizer CLI",
	Long: `Tokenizer is a CLI for tokenizing text with a tiktoken-style
byte-pair-encoding vocabulary (cl100k_base, o200k_base, o200k_harmony, or
any vocabulary in the same rank-file format).

Common operations:
  encode - Convert text to token IDs
  decode - Convert token IDs back to text
  stream - Process large input in streaming mode
  info   - Display vocabulary information`,
	Example: `  # Encode text against cl100k_base
  tokenizer --vocab cl100k_base.tiktoken encode "Hello, world!"

  # Decode tokens
  tokenizer --vocab cl100k_base.tiktoken decode 9906 11 1917 0

  # Stream a large file
  cat large_file.txt | tokenizer --vocab cl100k_base.tiktoken stream

  # Get vocabulary info
  tokenizer --vocab o200k_base.tiktoken --pattern o200k info`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokenizer version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "path to a tiktoken-format rank file (required)")
	rootCmd.PersistentFlags().StringVar(&patternName, "pattern", "cl100k", "pretokenization pattern: cl100k, o200k, or a literal regex")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newStreamCmd())
	rootCmd.AddCommand(newInfoCmd())
}
