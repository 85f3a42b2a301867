package merge

import "github.com/agentstation/bpe/token"

// SweepEncoder finds the minimum-rank adjacent pair via a linear scan on
// every iteration: O(m^2) worst case per span where m is the seeded
// token count, but with the lowest constant factor of the three
// strategies — optimal for the short spans that dominate natural text
// (spec §4.5.1).
//
// It carries no cross-call scratch of its own: the merge happens in
// place on the caller-owned output slice.
type SweepEncoder struct{}

// NewSweepEncoder builds a SweepEncoder.
func NewSweepEncoder() *SweepEncoder { return &SweepEncoder{} }

// EncodeAppendCompoundSpan implements Encoder.
func (e *SweepEncoder) EncodeAppendCompoundSpan(vocab RankLookup, spanBytes []byte, out []token.ID) []token.ID {
	start := len(out)
	out = vocab.AppendByteTokens(spanBytes, out)

	for {
		seg := out[start:]
		if len(seg) < 2 {
			break
		}
		bestIdx := -1
		var bestRank token.ID
		for i := 0; i < len(seg)-1; i++ {
			rank, ok := vocab.LookupPair(seg[i], seg[i+1])
			if !ok {
				continue
			}
			if bestIdx == -1 || rank < bestRank {
				bestIdx = i
				bestRank = rank
			}
		}
		if bestIdx == -1 {
			break
		}
		// The merged pair's rank doubles as the resulting token's own id
		// (spec §9), so no further lookup is needed here.
		seg[bestIdx] = bestRank
		copy(seg[bestIdx+1:], seg[bestIdx+2:])
		out = out[:len(out)-1]
	}
	return out
}
