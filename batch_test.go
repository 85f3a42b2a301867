package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatchMatchesSequentialEncode(t *testing.T) {
	e := mustTestEncoder(t)
	texts := []string{
		"hello world",
		"helloworld",
		"<|endoftext|>",
		"",
		"hello<|endoftext|>world",
	}

	got, err := e.EncodeBatch(texts)
	require.NoError(t, err)
	require.Len(t, got, len(texts))
	for i, text := range texts {
		assert.Equal(t, e.Encode(text), got[i], "index %d", i)
	}
}

func TestEncodeBatchPreservesInputOrder(t *testing.T) {
	e := mustTestEncoder(t)
	texts := make([]string, 30)
	for i := range texts {
		texts[i] = "helloworld hello world"
	}
	got, err := e.EncodeBatch(texts)
	require.NoError(t, err)
	require.Len(t, got, 30)
	for i, ids := range got {
		assert.Equal(t, []TokenID{259, 263, 259, 263}, ids, "index %d", i)
	}
}
