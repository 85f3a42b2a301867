package bpe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainScanner(t *testing.T, s *Scanner) []TokenID {
	t.Helper()
	var got []TokenID
	for s.Scan() {
		got = append(got, s.Token())
	}
	require.NoError(t, s.Err())
	return got
}

func TestScannerMatchesEncodeForSmallInput(t *testing.T) {
	e := mustTestEncoder(t)
	text := "hello world helloworld"
	s := e.NewScanner(strings.NewReader(text))
	assert.Equal(t, e.Encode(text), drainScanner(t, s))
}

func TestScannerHandlesSmallReadBuffer(t *testing.T) {
	e := mustTestEncoder(t)
	text := strings.Repeat("helloworld hello world ", 20)
	s := e.NewScanner(strings.NewReader(text), WithScannerBufferSize(8))
	got := drainScanner(t, s)
	assert.NotEmpty(t, got)
	// With a buffer this small chunks split words, so the output is not
	// compared with Encode; every token present must still be one of the
	// vocabulary's known ids.
	for _, id := range got {
		_, ok := e.Vocabulary().Decode(id)
		assert.True(t, ok)
	}
}

func TestScannerEmptyInput(t *testing.T) {
	e := mustTestEncoder(t)
	s := e.NewScanner(strings.NewReader(""))
	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
}

func TestScannerRespectsMaxBuffer(t *testing.T) {
	e := mustTestEncoder(t)
	text := strings.Repeat("a", 1000)
	s := e.NewScanner(strings.NewReader(text), WithScannerMaxBuffer(64), WithScannerBufferSize(16))
	got := drainScanner(t, s)
	assert.NotEmpty(t, got)
}
