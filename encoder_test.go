package bpe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTestEncoder(t *testing.T, opts ...Option) *Encoder {
	t.Helper()
	v := mustTestVocab(t)
	e, err := New(v, opts...)
	require.NoError(t, err)
	return e
}

func TestEncodeEmptyText(t *testing.T) {
	e := mustTestEncoder(t)
	assert.Empty(t, e.Encode(""))
}

func TestEncodeWholeWordHits(t *testing.T) {
	e := mustTestEncoder(t)
	assert.Equal(t, []TokenID{259, 263}, e.Encode("hello world"))
}

func TestEncodeDrivesFullMergeChain(t *testing.T) {
	// "helloworld" has no direct vocabulary entry; the merge loop must
	// walk every intermediate pair derived in TestVocabularyDerivesPairRanks
	// to arrive at the same two tokens as the whole-word hits above.
	e := mustTestEncoder(t)
	assert.Equal(t, []TokenID{259, 263}, e.Encode("helloworld"))
}

func TestEncodeSpecialToken(t *testing.T) {
	e := mustTestEncoder(t)
	assert.Equal(t, []TokenID{264}, e.Encode("<|endoftext|>"))
}

func TestEncodeSpecialTokenInMiddle(t *testing.T) {
	e := mustTestEncoder(t)
	got := e.Encode("hello<|endoftext|>world")
	assert.Equal(t, []TokenID{259, 264, 263}, got)
}

func TestEncodeMultiByteFallback(t *testing.T) {
	e := mustTestEncoder(t)
	// No learned merges exist over non-ASCII bytes in the test vocabulary,
	// so each UTF-8 byte of "日" falls back to its own byte token.
	got := e.Encode("日")
	want := make([]TokenID, 0, 3)
	for _, b := range []byte("日") {
		want = append(want, TokenID(b))
	}
	assert.Equal(t, want, got)
}

func TestEncodeAllStrategiesAgree(t *testing.T) {
	v := mustTestVocab(t)
	text := "helloworld hello world helloworld"
	var want []TokenID
	for i, s := range []Strategy{StrategySweep, StrategyHeap, StrategyHybrid} {
		e, err := New(v, WithStrategy(s))
		require.NoError(t, err)
		got := e.Encode(text)
		if i == 0 {
			want = got
			continue
		}
		assert.Equal(t, want, got)
	}
}

func TestEncodeWithCacheMatchesWithoutCache(t *testing.T) {
	v := mustTestVocab(t)
	plain, err := New(v)
	require.NoError(t, err)
	cached, err := New(v, WithCacheSize(16))
	require.NoError(t, err)

	text := "helloworld helloworld helloworld"
	assert.Equal(t, plain.Encode(text), cached.Encode(text))
}

func TestEncodeIsConcurrencySafe(t *testing.T) {
	e := mustTestEncoder(t, WithPoolSize(4))
	text := "hello world helloworld <|endoftext|>"
	want := e.Encode(text)

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			assert.Equal(t, want, e.Encode(text))
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	e := mustTestEncoder(t)
	ids := e.Encode("hello world")
	b, err := e.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "helloworld", string(b))
}

func TestDecodeUnknownTokenID(t *testing.T) {
	e := mustTestEncoder(t)
	_, err := e.Decode([]TokenID{999999})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTokenID)
}

func TestNewRejectsNilVocabulary(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNewRejectsInvalidStrategy(t *testing.T) {
	v := mustTestVocab(t)
	_, err := New(v, WithStrategy("bogus"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestEncodeWhitespaceCollapse(t *testing.T) {
	e := mustTestEncoder(t)
	got := e.Encode("  hello   world  ")
	assert.Equal(t, []TokenID{259, 263}, got)
}

func TestEncodeLongTextIsDeterministic(t *testing.T) {
	e := mustTestEncoder(t)
	text := strings.Repeat("helloworld hello world ", 50)
	first := e.Encode(text)
	second := e.Encode(text)
	assert.Equal(t, first, second)
}
