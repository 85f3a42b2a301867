package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVocabConfig builds a tiny, fully worked-out BPE vocabulary:
// "hello" and "world" are each reachable two ways — as a direct
// whole-word hit, and (via "helloworld") by walking the full merge
// chain from byte tokens up through every intermediate pair. This
// exercises both of Encoder.encodeWord's paths without needing a real
// cl100k_base/o200k_base data file.
func testVocabConfig() VocabularyConfig {
	ranks := make(map[string]TokenID, 256+8)
	for b := 0; b < 256; b++ {
		ranks[string([]byte{byte(b)})] = TokenID(b)
	}
	ranks["he"] = 256
	ranks["ll"] = 257
	ranks["hell"] = 258
	ranks["hello"] = 259
	ranks["wo"] = 260
	ranks["wor"] = 261
	ranks["worl"] = 262
	ranks["world"] = 263

	return VocabularyConfig{
		TokenRanks: ranks,
		Specials:   map[string]TokenID{"<|endoftext|>": 264},
		Pattern:    `\S+`,
	}
}

func mustTestVocab(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := NewVocabulary(testVocabConfig())
	require.NoError(t, err)
	return v
}

func TestNewVocabularyRejectsMissingByteFallback(t *testing.T) {
	cfg := testVocabConfig()
	delete(cfg.TokenRanks, string([]byte{0}))
	_, err := NewVocabulary(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingByteFallback)
}

func TestNewVocabularyRejectsEmpty(t *testing.T) {
	_, err := NewVocabulary(VocabularyConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingByteFallback)
}

func TestNewVocabularyRejectsDuplicateID(t *testing.T) {
	cfg := testVocabConfig()
	cfg.TokenRanks["duplicate"] = 259 // collides with "hello"
	_, err := NewVocabulary(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateToken)
}

func TestNewVocabularyRejectsSpecialOverlappingWord(t *testing.T) {
	cfg := testVocabConfig()
	cfg.Specials = map[string]TokenID{"hello": 999}
	_, err := NewVocabulary(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateToken)
}

func TestVocabularyDerivesPairRanks(t *testing.T) {
	v := mustTestVocab(t)
	id, ok := v.LookupPair(TokenID('h'), TokenID('e'))
	require.True(t, ok)
	assert.Equal(t, TokenID(256), id)

	id, ok = v.LookupPair(TokenID(256), TokenID(257))
	require.True(t, ok)
	assert.Equal(t, TokenID(258), id)
}

func TestVocabularyLookupWord(t *testing.T) {
	v := mustTestVocab(t)
	id, ok := v.LookupWord([]byte("hello"))
	require.True(t, ok)
	assert.Equal(t, TokenID(259), id)

	_, ok = v.LookupWord([]byte("helloworld"))
	assert.False(t, ok)
}

func TestVocabularyDecodeRoundTrip(t *testing.T) {
	v := mustTestVocab(t)
	b, ok := v.Decode(TokenID(259))
	require.True(t, ok)
	assert.Equal(t, "hello", string(b))

	b, ok = v.Decode(TokenID(264))
	require.True(t, ok)
	assert.Equal(t, "<|endoftext|>", string(b))
}

func TestVocabularySize(t *testing.T) {
	v := mustTestVocab(t)
	assert.Equal(t, 256+8+1, v.Size())
}
