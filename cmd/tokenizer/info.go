package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display vocabulary information",
		Long: `Display information about the loaded vocabulary: size, pattern, and
special tokens.`,
		Example: `  tokenizer --vocab cl100k_base.tiktoken info`,
		RunE:    runInfo,
	}
	return cmd
}

func runInfo(_ *cobra.Command, _ []string) error {
	vocab, err := loadVocabulary(vocabPath, patternName)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	fmt.Println("Vocabulary Information")
	fmt.Println("======================")
	fmt.Println()
	fmt.Printf("  Vocabulary size:  %d tokens\n", vocab.Size())
	fmt.Printf("  Pattern:          %s\n", patternName)
	fmt.Println()

	fmt.Println("Special tokens:")
	for _, lit := range defaultSpecials {
		if id, ok := vocab.LookupSpecial([]byte(lit)); ok {
			fmt.Printf("  %-20s -> %d\n", lit, id)
		}
	}
	return nil
}
