package merge

import (
	"container/heap"

	"github.com/agentstation/bpe/token"
)

// heapEntry is a candidate merge: the pair starting at position pos has
// the given rank. leftGen/rightGen snapshot the generation counters of
// the two positions at the time the entry was pushed; if either counter
// has since advanced, the position's neighbor has changed and the entry
// is stale (spec §4.5.2 "Generation counters").
type heapEntry struct {
	rank     token.ID
	pos      int
	leftGen  int
	rightGen int
}

// minHeap orders heapEntry values by rank, then by position to break
// ties leftmost (spec §4.5 "ties broken leftmost").
type minHeap []heapEntry

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}
	return h[i].pos < h[j].pos
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)   { *h = append(*h, x.(heapEntry)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// HeapEncoder merges via a binary min-heap of candidate pairs over a
// doubly linked list of live positions: O(m log m) for a span seeded
// with m byte tokens. Stale heap entries (candidates whose neighbor has
// since been merged away) are detected with per-position generation
// counters rather than removed from the heap (spec §4.5.2).
//
// Its scratch slices are reused across calls, so a HeapEncoder must not
// be shared between concurrent callers.
type HeapEncoder struct {
	next, prev, gen []int
	alive           []bool
	heap            minHeap
}

// NewHeapEncoder builds a HeapEncoder.
func NewHeapEncoder() *HeapEncoder { return &HeapEncoder{} }

func (e *HeapEncoder) ensureCap(m int) {
	if cap(e.next) < m {
		e.next = make([]int, m)
		e.prev = make([]int, m)
		e.gen = make([]int, m)
		e.alive = make([]bool, m)
		return
	}
	e.next = e.next[:m]
	e.prev = e.prev[:m]
	e.gen = e.gen[:m]
	e.alive = e.alive[:m]
}

// EncodeAppendCompoundSpan implements Encoder.
func (e *HeapEncoder) EncodeAppendCompoundSpan(vocab RankLookup, spanBytes []byte, out []token.ID) []token.ID {
	start := len(out)
	out = vocab.AppendByteTokens(spanBytes, out)
	m := len(out) - start
	if m < 2 {
		return out
	}

	e.ensureCap(m)
	next, prev, gen, alive := e.next, e.prev, e.gen, e.alive
	for i := 0; i < m; i++ {
		gen[i] = 0
		alive[i] = true
		prev[i] = i - 1
		if i < m-1 {
			next[i] = i + 1
		} else {
			next[i] = -1
		}
	}

	e.heap = e.heap[:0]
	for i := 0; i < m-1; i++ {
		if rank, ok := vocab.LookupPair(out[start+i], out[start+i+1]); ok {
			heap.Push(&e.heap, heapEntry{rank: rank, pos: i})
		}
	}

	for e.heap.Len() > 0 {
		item := heap.Pop(&e.heap).(heapEntry)
		l := item.pos
		if !alive[l] {
			continue
		}
		r := next[l]
		if r == -1 {
			continue
		}
		if gen[l] != item.leftGen || gen[r] != item.rightGen {
			continue
		}

		// The merged pair's rank doubles as the resulting token's id
		// (spec §9): the left node absorbs it, the right node dies.
		out[start+l] = item.rank
		gen[l]++
		alive[r] = false
		next[l] = next[r]
		if next[l] != -1 {
			prev[next[l]] = l
		}

		if p := prev[l]; p != -1 {
			if rank, ok := vocab.LookupPair(out[start+p], out[start+l]); ok {
				heap.Push(&e.heap, heapEntry{rank: rank, pos: p, leftGen: gen[p], rightGen: gen[l]})
			}
		}
		if n := next[l]; n != -1 {
			if rank, ok := vocab.LookupPair(out[start+l], out[start+n]); ok {
				heap.Push(&e.heap, heapEntry{rank: rank, pos: l, leftGen: gen[l], rightGen: gen[n]})
			}
		}
	}

	k := 0
	for i := 0; i != -1; i = next[i] {
		if alive[i] {
			out[start+k] = out[start+i]
			k++
		}
	}
	return out[:start+k]
}
