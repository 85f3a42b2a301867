package merge

import "github.com/agentstation/bpe/token"

// hybridSweepThreshold is the byte-length cutoff at or below which the sweep
// encoder's lower constant factor beats the heap encoder's better
// asymptotic complexity (spec §4.5.3). Most natural-language words fall
// under it, so the common case never touches the heap at all.
const hybridSweepThreshold = 16

// HybridEncoder dispatches each span to SweepEncoder or HeapEncoder by
// its seeded length, owning one of each so neither strategy allocates
// scratch it isn't using.
type HybridEncoder struct {
	sweep *SweepEncoder
	heap  *HeapEncoder
}

// NewHybridEncoder builds a HybridEncoder.
func NewHybridEncoder() *HybridEncoder {
	return &HybridEncoder{sweep: NewSweepEncoder(), heap: NewHeapEncoder()}
}

// EncodeAppendCompoundSpan implements Encoder.
func (e *HybridEncoder) EncodeAppendCompoundSpan(vocab RankLookup, spanBytes []byte, out []token.ID) []token.ID {
	if len(spanBytes) <= hybridSweepThreshold {
		return e.sweep.EncodeAppendCompoundSpan(vocab, spanBytes, out)
	}
	return e.heap.EncodeAppendCompoundSpan(vocab, spanBytes, out)
}
