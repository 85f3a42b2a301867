package pattern

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// Pool holds N cloned Pattern instances selected by an atomic counter
// modulo N (spec §4.2 discipline (b)).
//
// Go exposes no stable, public OS-thread identifier the way the
// reference implementation's thread-hash discipline assumes — goroutines
// are not pinned to OS threads and runtime.Goid() does not exist as a
// public API. An atomic counter is the idiomatic Go substitute: the spec
// explicitly allows either discipline, and collisions remain correct
// (merely serialized) either way.
type Pool struct {
	slots   []*Pattern
	counter atomic.Uint64
}

// DefaultMaxPoolSize caps pool size when callers ask for
// available_parallelism() without an explicit override.
const DefaultMaxPoolSize = 64

// NewPool builds a pool of min(size, DefaultMaxPoolSize) clones of base.
// size <= 0 defaults to runtime.GOMAXPROCS(0).
func NewPool(base *Pattern, size int) (*Pool, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if size > DefaultMaxPoolSize {
		size = DefaultMaxPoolSize
	}
	if size < 1 {
		size = 1
	}

	slots := make([]*Pattern, size)
	slots[0] = base
	for i := 1; i < size; i++ {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("pattern: pool clone %d: %w", i, err)
		}
		slots[i] = clone
	}
	return &Pool{slots: slots}, nil
}

// Get returns a borrowed Pattern slot for the duration of one
// find_iter-driven call. Any two concurrent calls that land on distinct
// slots operate on fully independent Pattern instances; calls that
// collide degrade to sequential use of one instance but stay correct.
func (p *Pool) Get() *Pattern {
	n := p.counter.Add(1)
	idx := int(n % uint64(len(p.slots)))
	return p.slots[idx]
}

// Len reports the number of pool slots.
func (p *Pool) Len() int { return len(p.slots) }
