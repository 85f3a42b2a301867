package span

import "github.com/agentstation/bpe/pattern"

// Lexer is the uniform "find next span starting at or after offset"
// interface (spec §4.3). PatternLexer delegates to a single compiled
// Pattern; PoolLexer delegates to a Pattern taken from a pattern.Pool on
// each call.
type Lexer interface {
	// NextSpan returns the next match at or after offset, or ok=false if
	// there is no further match in text.
	NextSpan(text string, offset int) (start, end int, ok bool)
}

// PatternLexer is a Lexer backed by a single compiled Pattern.
type PatternLexer struct {
	P *pattern.Pattern
}

// NextSpan implements Lexer.
func (l *PatternLexer) NextSpan(text string, offset int) (int, int, bool) {
	for m := range l.P.FindIter(text, offset) {
		return m.Start, m.End, true
	}
	return 0, 0, false
}

// PoolLexer is a Lexer backed by a pattern.Pool, selecting an independent
// Pattern clone per call so concurrent callers never contend on one
// regex engine's internal scratch state.
type PoolLexer struct {
	Pool *pattern.Pool
}

// NextSpan implements Lexer.
func (l *PoolLexer) NextSpan(text string, offset int) (int, int, bool) {
	p := l.Pool.Get()
	for m := range p.FindIter(text, offset) {
		return m.Start, m.End, true
	}
	return 0, 0, false
}
