package span

// TextSpanner drives streaming pretokenization over a word Lexer and an
// optional special-token Lexer, emitting Word/Gap/Special spans in strict
// left-to-right, non-overlapping order (spec §4.3).
type TextSpanner struct {
	WordLexer    Lexer
	SpecialLexer Lexer // nil if the vocabulary has no special tokens
}

// Visitor is called once per emitted span. Returning false halts
// iteration early; ForEachSplitSpan then returns ok=false.
type Visitor func(Span) bool

// ForEachSplitSpan drives the interleaved special/word split described in
// spec §4.3. It returns ok=false if the visitor asked to stop before the
// whole text was consumed.
func (s *TextSpanner) ForEachSplitSpan(text string, visit Visitor) bool {
	cursor := 0

	if s.SpecialLexer != nil {
		for {
			start, end, found := s.SpecialLexer.NextSpan(text, cursor)
			if !found {
				break
			}
			if !s.emitWordsOver(text, cursor, start, visit) {
				return false
			}
			if !visit(Span{Kind: Special, Start: start, End: end}) {
				return false
			}
			cursor = end
		}
	}

	return s.emitWordsOver(text, cursor, len(text), visit)
}

// emitWordsOver drives the word lexer over text[base:limit], emitting
// Word spans for matches and Gap spans for uncovered runs (leading,
// trailing, or between matches). All spans use absolute offsets into the
// original text.
func (s *TextSpanner) emitWordsOver(text string, base, limit int, visit Visitor) bool {
	if base >= limit {
		return true
	}

	cursor := base
	for {
		start, end, found := s.WordLexer.NextSpan(text[:limit], cursor)
		if !found {
			break
		}
		if start > cursor {
			if !visit(Span{Kind: Gap, Start: cursor, End: start}) {
				return false
			}
		}
		if !visit(Span{Kind: Word, Start: start, End: end}) {
			return false
		}
		cursor = end
	}

	if cursor < limit {
		if !visit(Span{Kind: Gap, Start: cursor, End: limit}) {
			return false
		}
	}
	return true
}
