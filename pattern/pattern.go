// Package pattern wraps github.com/dlclark/regexp2 behind a small
// interface sized to what the tokenizer core needs: compiling a pattern,
// iterating non-overlapping matches from an offset, and cloning a
// compiled pattern so concurrent callers can hold independent scratch
// state (spec §4.1).
//
// regexp2 is used (rather than the standard library's regexp) because
// the canonical cl100k_base/o200k_base pretokenization patterns rely on
// negative lookahead, which RE2-derived engines cannot express.
package pattern

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled regex supporting Unicode classes, non-capturing
// groups, and lookaround.
//
// A Pattern caches the rune->byte offset table of the last text FindIter
// was called against, so it is not safe for concurrent use; callers that
// need independent concurrent scratch state should use Clone or Pool.
type Pattern struct {
	source string
	re     *regexp2.Regexp

	cachedText    string
	cachedOffsets []int
}

// Compile compiles source, returning a CompileError wrapping the
// underlying parse failure on invalid syntax.
func Compile(source string) (*Pattern, error) {
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, &CompileError{Source: source, Err: err}
	}
	// Matches run to completion rather than stopping at a fixed step
	// budget; pretokenization words are bounded in practice (one
	// sentence, one run of whitespace) so this is safe.
	re.MatchTimeout = 0
	return &Pattern{source: source, re: re}, nil
}

// CompileError wraps a regexp2 parse failure with the offending source.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern: compile %q: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Match is a single non-overlapping match: a byte-offset range into the
// text find_iter was called on.
type Match struct {
	Start, End int
}

// FindIter returns an iterator over non-overlapping matches in text
// starting at or after startOffset (a byte offset), in input order. It
// cannot fail: regexp2 matching against an already-compiled pattern never
// errors; offsets it yields always land on UTF-8 rune boundaries since
// they are translated from regexp2's rune-indexed matches.
//
// Matching starts at startOffset (rounded up to the next rune boundary)
// via FindStringMatchStartingAt, which takes a byte offset, rather than
// re-slicing text into a fresh search string: the spanner drives this
// method repeatedly over the same text with an advancing offset (one call
// per emitted span), and re-copying the remaining text on every call
// would make a single pass O(n^2) in text length.
func (p *Pattern) FindIter(text string, startOffset int) func(yield func(Match) bool) {
	return func(yield func(Match) bool) {
		if startOffset < 0 {
			startOffset = 0
		}
		if startOffset > len(text) {
			return
		}

		offsets := p.offsetsFor(text)
		startRune := runeIndexForByte(offsets, startOffset)

		m, _ := p.re.FindStringMatchStartingAt(text, offsets[startRune])
		for m != nil {
			start := offsets[m.Index]
			end := offsets[m.Index+m.Length]
			if !yield(Match{Start: start, End: end}) {
				return
			}
			next, _ := p.re.FindNextMatch(m)
			m = next
		}
	}
}

// offsetsFor returns the rune-index -> byte-offset table for text,
// rebuilding it only when text differs from the table built for the
// previous call. Callers within one spanner pass repeatedly invoke
// FindIter against the same underlying text, so this amortizes the
// O(len(text)) table build across the whole pass instead of paying it
// once per emitted span.
func (p *Pattern) offsetsFor(text string) []int {
	if text == p.cachedText {
		return p.cachedOffsets
	}
	offsets := indexByteOffsets(text)
	p.cachedText = text
	p.cachedOffsets = offsets
	return offsets
}

// Clone returns a Pattern instance that shares no mutable state with p.
// regexp2 already pools per-call matching state internally, so Clone
// simply recompiles the same source text; the cost is paid once per
// regex-pool slot at pool construction time, not per encode call.
func (p *Pattern) Clone() (*Pattern, error) {
	return Compile(p.source)
}

// Source returns the pattern text this Pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// indexByteOffsets builds a table mapping rune index -> byte offset (with
// one trailing entry for len(text)). regexp2 reports match positions in
// rune units (it mirrors .NET string semantics); this table is how the
// engine translates back to the byte offsets the rest of the core
// operates on.
func indexByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return offsets
}

func runeIndexForByte(offsets []int, byteOffset int) int {
	// offsets is sorted ascending; binary search for the first rune that
	// starts at or after byteOffset.
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if offsets[mid] < byteOffset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
