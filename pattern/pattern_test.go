package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchSlices(t *testing.T, p *Pattern, text string, start int) []Match {
	t.Helper()
	var got []Match
	for m := range p.FindIter(text, start) {
		got = append(got, m)
	}
	return got
}

func TestCompileInvalidPattern(t *testing.T) {
	_, err := Compile("(unclosed")
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
}

func TestFindIterBasicWords(t *testing.T) {
	p, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	got := matchSlices(t, p, "hello world", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", "hello world"[got[0].Start:got[0].End])
	assert.Equal(t, "world", "hello world"[got[1].Start:got[1].End])
}

func TestFindIterStartOffset(t *testing.T) {
	p, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	text := "hello world"
	got := matchSlices(t, p, text, 6)
	require.Len(t, got, 1)
	assert.Equal(t, "world", text[got[0].Start:got[0].End])
}

func TestFindIterLookaheadSupport(t *testing.T) {
	// Negative lookahead: whitespace run not followed by non-space. The
	// inner run backtracks to leave its last space before "b"; the
	// trailing run matches whole.
	p, err := Compile(`\s+(?!\S)`)
	require.NoError(t, err)

	text := "a   b  "
	got := matchSlices(t, p, text, 0)
	require.Len(t, got, 2)
	assert.Equal(t, Match{Start: 1, End: 3}, got[0])
	assert.Equal(t, Match{Start: 5, End: 7}, got[1])
}

func TestFindIterMultiByteOffsetsAreByteAligned(t *testing.T) {
	p, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	text := "日本語 hello"
	got := matchSlices(t, p, text, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "日本語", text[got[0].Start:got[0].End])
	assert.Equal(t, "hello", text[got[1].Start:got[1].End])
}

func TestFindIterEarlyStop(t *testing.T) {
	p, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	var seen int
	for range p.FindIter("one two three", 0) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestCloneIndependentInstances(t *testing.T) {
	p, err := Compile(`\p{L}+`)
	require.NoError(t, err)

	clone, err := p.Clone()
	require.NoError(t, err)
	assert.NotSame(t, p, clone)
	assert.Equal(t, p.Source(), clone.Source())

	got := matchSlices(t, clone, "abc def", 0)
	require.Len(t, got, 2)
}
