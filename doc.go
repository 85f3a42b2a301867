// Package bpe implements the encoding core of a byte-pair-encoding tokenizer
// compatible with modern large-language-model vocabularies such as
// cl100k_base, o200k_base and o200k_harmony.
//
// Given a trained Vocabulary (a set of byte sequences mapped to token IDs,
// plus merge priorities and special tokens) and an input text string, the
// core produces the sequence of token IDs that matches the canonical BPE
// encoding produced by the reference implementation for that vocabulary.
//
// # Architecture
//
//	┌─────────────┐
//	│  Input Text │
//	└──────┬──────┘
//	       │
//	       ▼
//	┌─────────────────┐     ┌─────────────────┐
//	│ Special Token   │────▶│ Word Regex      │
//	│ Spanning        │     │ Spanning        │
//	└─────────────────┘     └────────┬────────┘
//	                                 │
//	                                 ▼
//	                        ┌─────────────────┐
//	                        │ Whole-word      │
//	                        │ Vocabulary Hit? │
//	                        └────────┬────────┘
//	                         yes │        │ no
//	                             │        ▼
//	                             │ ┌─────────────────┐
//	                             │ │ Span Encoder     │
//	                             │ │ (sweep / heap /  │
//	                             │ │  hybrid)         │
//	                             │ └────────┬────────┘
//	                             ▼          ▼
//	                        ┌─────────────────┐
//	                        │ Token IDs       │
//	                        └─────────────────┘
//
// Vocabulary loading from disk and pretrained-vocabulary download/caching
// are outside the scope of this package; see [Vocabulary] for the boundary
// this package consumes. Decoding is limited to a direct table lookup
// ([Encoder.Decode]).
//
// # Basic usage
//
//	vocab, err := bpe.NewVocabulary(bpe.VocabularyConfig{
//	    TokenRanks: ranks,             // map[string]bpe.TokenID
//	    Specials:   specials,          // map[string]bpe.TokenID
//	    Pattern:    bpe.PatternCL100K,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	enc, err := bpe.New(vocab, bpe.WithStrategy(bpe.StrategyHybrid))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens := enc.Encode("hello world")
package bpe
