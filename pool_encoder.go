package bpe

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/agentstation/bpe/internal/merge"
	"github.com/agentstation/bpe/pattern"
	"github.com/agentstation/bpe/span"
)

// encoderSlot bundles one goroutine's worth of scratch state: a text
// spanner driving independent pattern clones, and a merge encoder with
// its own reusable buffers (spec §4.5 "Scratch buffers", §4.6 "per-thread
// setup").
type encoderSlot struct {
	spanner *span.TextSpanner
	merger  merge.Encoder
}

// encoderPool selects an encoderSlot by an atomic counter modulo N,
// mirroring pattern.Pool's discipline (see its doc comment for why: Go
// has no public stable OS-thread id to hash on instead) but pooling the
// whole per-thread encode pipeline rather than a single pattern.
type encoderPool struct {
	slots   []*encoderSlot
	counter atomic.Uint64
}

func newEncoderPool(wordPattern, specialPattern *pattern.Pattern, strategy merge.Strategy, size int) (*encoderPool, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if size > pattern.DefaultMaxPoolSize {
		size = pattern.DefaultMaxPoolSize
	}
	if size < 1 {
		size = 1
	}

	slots := make([]*encoderSlot, size)
	for i := range slots {
		wp := wordPattern
		if i > 0 {
			clone, err := wordPattern.Clone()
			if err != nil {
				return nil, fmt.Errorf("bpe: word pattern clone %d: %w", i, err)
			}
			wp = clone
		}

		var sp *pattern.Pattern
		if specialPattern != nil {
			sp = specialPattern
			if i > 0 {
				clone, err := specialPattern.Clone()
				if err != nil {
					return nil, fmt.Errorf("bpe: special pattern clone %d: %w", i, err)
				}
				sp = clone
			}
		}

		spanner := &span.TextSpanner{WordLexer: &span.PatternLexer{P: wp}}
		if sp != nil {
			spanner.SpecialLexer = &span.PatternLexer{P: sp}
		}
		slots[i] = &encoderSlot{spanner: spanner, merger: merge.NewEncoder(strategy)}
	}
	return &encoderPool{slots: slots}, nil
}

func (p *encoderPool) get() *encoderSlot {
	n := p.counter.Add(1)
	return p.slots[n%uint64(len(p.slots))]
}

func (p *encoderPool) len() int { return len(p.slots) }
