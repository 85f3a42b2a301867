package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpe"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [token_ids...]",
		Short: "Decode token IDs to text",
		Long: `Decode token IDs back to raw bytes.

Token IDs can be provided as arguments or piped from stdin, whitespace
separated either way.`,
		Example: `  tokenizer --vocab cl100k_base.tiktoken decode 9906 11 1917 0
  echo "9906 11 1917 0" | tokenizer --vocab cl100k_base.tiktoken decode`,
		RunE: runDecode,
	}
	return cmd
}

func runDecode(_ *cobra.Command, args []string) error {
	vocab, err := loadVocabulary(vocabPath, patternName)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	enc, err := newEncoder(vocab)
	if err != nil {
		return err
	}

	var ids []bpe.TokenID
	if len(args) > 0 {
		for _, arg := range args {
			n, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid token id %q: %w", arg, err)
			}
			ids = append(ids, bpe.TokenID(n))
		}
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			n, err := strconv.ParseUint(scanner.Text(), 10, 32)
			if err != nil {
				return fmt.Errorf("invalid token id %q: %w", scanner.Text(), err)
			}
			ids = append(ids, bpe.TokenID(n))
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("no token ids provided")
	}

	text, err := enc.Decode(ids)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	os.Stdout.Write(text)
	return nil
}
