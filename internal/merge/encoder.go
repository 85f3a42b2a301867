// Package merge implements the three interchangeable per-word BPE merge
// strategies described in spec §4.5: incremental sweep, min-heap with a
// linked list, and a hybrid that picks between them by span size.
//
// All three share one contract (encode_append_compound_span): seed one
// token per input byte via the byte-level fallback, then repeatedly merge
// the adjacent pair with the smallest rank (ties broken leftmost) until no
// remaining adjacent pair has a rank. For the same vocabulary and input
// span they are required to produce bit-identical output (spec §4.5,
// testable per spec §8.2); only their internal bookkeeping differs.
package merge

import "github.com/agentstation/bpe/token"

// RankLookup is the subset of Vocabulary span encoders need: merge-rank
// and byte-fallback lookups. Kept as an interface (rather than importing
// the root package's concrete Vocabulary) to avoid an import cycle
// between the root package and this one.
type RankLookup interface {
	LookupPair(a, b token.ID) (token.ID, bool)
	AppendByteTokens(data []byte, out []token.ID) []token.ID
}

// Strategy names one of the three span-encoder algorithms.
type Strategy string

const (
	StrategySweep  Strategy = "incremental-sweep"
	StrategyHeap   Strategy = "merge-heap"
	StrategyHybrid Strategy = "hybrid"
)

// Encoder performs encode_append_compound_span for one strategy. Encoder
// instances own reusable scratch buffers and are therefore NOT safe for
// concurrent use; each thread/goroutine must own its own instance (spec
// §4.5 "Scratch buffers").
type Encoder interface {
	// EncodeAppendCompoundSpan seeds spanBytes as byte-fallback tokens,
	// applies merges per the vocabulary's pair ranks, and appends the
	// result to out, returning the grown slice. The caller has already
	// verified spanBytes is not a whole-word vocabulary hit.
	EncodeAppendCompoundSpan(vocab RankLookup, spanBytes []byte, out []token.ID) []token.ID
}

// NewEncoder builds a fresh, scratch-owning Encoder for strategy. Called
// once per thread/pool-slot at setup time (spec §4.6, §9 "Strategy
// dispatch"), not per encode call.
func NewEncoder(strategy Strategy) Encoder {
	switch strategy {
	case StrategySweep:
		return NewSweepEncoder()
	case StrategyHeap:
		return NewHeapEncoder()
	case StrategyHybrid:
		return NewHybridEncoder()
	default:
		return NewHybridEncoder()
	}
}
