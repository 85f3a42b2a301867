package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpe"
)

var (
	streamBufferSize int
	streamMaxBuffer  int
	streamOutput     string
)

func newStreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Process text in streaming mode",
		Long: `Process text in streaming mode, outputting tokens as they are produced.

The streaming tokenizer accumulates input until it finds a safe
tokenization boundary (whitespace, or any UTF-8 boundary once the
internal buffer has grown large), so large inputs never need to be held
in memory all at once.

Input is read from stdin only.`,
		Example: `  cat large_file.txt | tokenizer --vocab cl100k_base.tiktoken stream
  cat data.txt | tokenizer --vocab cl100k_base.tiktoken stream --buffer-size 8192`,
		RunE: runStream,
	}

	cmd.Flags().IntVar(&streamBufferSize, "buffer-size", 4096, "buffer size for reading")
	cmd.Flags().IntVar(&streamMaxBuffer, "max-buffer", 1048576, "maximum buffer size before forcing tokenization")
	cmd.Flags().StringVarP(&streamOutput, "output", "o", "space", "output format: space, newline")

	return cmd
}

func runStream(_ *cobra.Command, _ []string) error {
	if streamOutput != "space" && streamOutput != "newline" {
		return fmt.Errorf("invalid output format %q: must be 'space' or 'newline'", streamOutput)
	}

	vocab, err := loadVocabulary(vocabPath, patternName)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	enc, err := newEncoder(vocab)
	if err != nil {
		return err
	}

	scanner := enc.NewScanner(
		os.Stdin,
		bpe.WithScannerBufferSize(streamBufferSize),
		bpe.WithScannerMaxBuffer(streamMaxBuffer),
	)

	first := true
	count := 0
	for scanner.Scan() {
		tok := scanner.Token()
		count++
		switch streamOutput {
		case "newline":
			fmt.Println(tok)
		case "space":
			if !first {
				fmt.Print(" ")
			}
			fmt.Print(tok)
			first = false
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("streaming error: %w", err)
	}
	if streamOutput == "space" && count > 0 {
		fmt.Println()
	}
	return nil
}
