package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	encOutput    string
	encCount     bool
	encCountOnly bool
	encMetrics   bool
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token IDs",
		Long: `Encode text into token IDs.

If no text is provided as an argument, reads from stdin.

The output format can be:
  - space:   Space-separated token IDs (default)
  - newline: One token ID per line
  - json:    JSON array of token IDs`,
		Example: `  tokenizer --vocab cl100k_base.tiktoken encode "Hello, world!"
  echo "Hello, world!" | tokenizer --vocab cl100k_base.tiktoken encode
  tokenizer --vocab cl100k_base.tiktoken encode --output json "Hello"
  tokenizer --vocab cl100k_base.tiktoken encode --count-only "Hello"`,
		RunE: runEncode,
	}

	cmd.Flags().StringVarP(&encOutput, "output", "o", "space", "output format: space, newline, json")
	cmd.Flags().BoolVar(&encCount, "count", false, "show token count with output")
	cmd.Flags().BoolVar(&encCountOnly, "count-only", false, "show only token count (no tokens)")
	cmd.Flags().BoolVar(&encMetrics, "metrics", false, "show performance metrics")

	return cmd
}

type countingReader struct {
	io.Reader
	bytesRead int
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.Reader.Read(p)
	cr.bytesRead += n
	return n, err
}

func runEncode(_ *cobra.Command, args []string) error {
	vocab, err := loadVocabulary(vocabPath, patternName)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	enc, err := newEncoder(vocab)
	if err != nil {
		return err
	}

	var startTime time.Time
	if encMetrics {
		startTime = time.Now()
	}

	var text string
	var inputBytes int
	if len(args) > 0 {
		text = strings.Join(args, " ")
		inputBytes = len(text)
	} else {
		cr := &countingReader{Reader: os.Stdin}
		data, err := io.ReadAll(cr)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
		inputBytes = cr.bytesRead
	}

	tokens := enc.Encode(text)
	var encodeDuration time.Duration
	if encMetrics {
		encodeDuration = time.Since(startTime)
	}

	if encCountOnly {
		if encOutput == "json" {
			data, _ := json.Marshal(map[string]int{"count": len(tokens)})
			fmt.Println(string(data))
		} else {
			fmt.Println(len(tokens))
		}
		return nil
	}

	switch encOutput {
	case "json":
		output := map[string]any{"tokens": tokens}
		if encCount {
			output["count"] = len(tokens)
		}
		if encMetrics {
			output["metrics"] = map[string]any{
				"latency":     formatLatency(encodeDuration),
				"tps":         calculateTPS(len(tokens), encodeDuration),
				"input_bytes": inputBytes,
			}
		}
		data, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Println(string(data))
	case "newline":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
		}
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		printMetricsBlock(encMetrics, len(tokens), encodeDuration, inputBytes)
	case "space":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
			fmt.Print("tokens: ")
		}
		for i, tok := range tokens {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(tok)
		}
		fmt.Println()
		printMetricsBlock(encMetrics, len(tokens), encodeDuration, inputBytes)
	default:
		return fmt.Errorf("unknown output format: %s", encOutput)
	}

	return nil
}

func printMetricsBlock(show bool, tokenCount int, d time.Duration, inputBytes int) {
	if !show {
		return
	}
	fmt.Println("metrics:")
	fmt.Printf("  latency: %s\n", formatLatency(d))
	fmt.Printf("  tps: %d\n", calculateTPS(tokenCount, d))
	fmt.Printf("  input_bytes: %d\n", inputBytes)
}
