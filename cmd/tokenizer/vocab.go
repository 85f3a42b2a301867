package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/bpe"
)

// defaultSpecials lists the canonical cl100k_base/o200k_base special
// tokens in their standard order. Their IDs are assigned sequentially
// starting at the number of entries in the loaded BPE file (one past the
// highest rank when ranks run contiguously from 0). These are not the IDs
// the published cl100k_base/o200k_base vocabularies give these tokens.
var defaultSpecials = []string{
	bpe.EndOfText,
	bpe.FimPrefix,
	bpe.FimMiddle,
	bpe.FimSuffix,
	bpe.EndOfPrompt,
}

// loadTikTokenFile parses a tiktoken-format BPE rank file: one
// "<base64-token> <rank>" pair per line, blank lines ignored. This is
// the de facto interchange format for tiktoken-style vocabularies
// (cl100k_base.tiktoken, o200k_base.tiktoken).
func loadTikTokenFile(path string) (map[string]bpe.TokenID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab file: %w", err)
	}
	defer f.Close()

	ranks := make(map[string]bpe.TokenID)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed vocab line %q: want 2 fields, got %d", line, len(fields))
		}
		tokenBytes, err := base64.StdEncoding.DecodeString(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid base64 token %q: %w", fields[0], err)
		}
		rank, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid rank %q: %w", fields[1], err)
		}
		ranks[string(tokenBytes)] = bpe.TokenID(rank)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}
	return ranks, nil
}

// resolvePattern expands the named shorthands ("cl100k", "o200k") to
// their full pretokenization regex; any other value is used verbatim as
// a caller-supplied pattern.
func resolvePattern(name string) string {
	switch name {
	case "cl100k":
		return bpe.PatternCL100K
	case "o200k":
		return bpe.PatternO200K
	default:
		return name
	}
}

// loadVocabulary builds a bpe.Vocabulary from a tiktoken-format file on
// disk plus the canonical special tokens, assigned IDs past the file's
// highest rank.
func loadVocabulary(path, patternName string) (*bpe.Vocabulary, error) {
	ranks, err := loadTikTokenFile(path)
	if err != nil {
		return nil, err
	}

	specials := make(map[string]bpe.TokenID, len(defaultSpecials))
	next := bpe.TokenID(len(ranks))
	for _, lit := range defaultSpecials {
		specials[lit] = next
		next++
	}

	return bpe.NewVocabulary(bpe.VocabularyConfig{
		TokenRanks: ranks,
		Specials:   specials,
		Pattern:    resolvePattern(patternName),
	})
}

// newEncoder builds an Encoder over vocab with CLI-friendly defaults.
func newEncoder(vocab *bpe.Vocabulary) (*bpe.Encoder, error) {
	enc, err := bpe.New(vocab)
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}
	return enc, nil
}
