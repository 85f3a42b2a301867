package pattern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolSize(t *testing.T) {
	base, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	pool, err := NewPool(base, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, pool.Len())
}

func TestNewPoolCapsAtMax(t *testing.T) {
	base, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	pool, err := NewPool(base, DefaultMaxPoolSize+100)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxPoolSize, pool.Len())
}

func TestPoolGetDistinctSlotsAreIndependent(t *testing.T) {
	base, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	pool, err := NewPool(base, 8)
	require.NoError(t, err)

	seen := make(map[*Pattern]bool)
	for i := 0; i < 8; i++ {
		seen[pool.Get()] = true
	}
	assert.True(t, len(seen) > 1, "expected Get to cycle across multiple distinct slots")
}

func TestPoolConcurrentUse(t *testing.T) {
	base, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	pool, err := NewPool(base, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := pool.Get()
			var n int
			for range p.FindIter("hello world", 0) {
				n++
			}
			assert.Equal(t, 2, n)
		}()
	}
	wg.Wait()
}
