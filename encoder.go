package bpe

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agentstation/bpe/pattern"
	"github.com/agentstation/bpe/span"
)

// Encoder turns text into token IDs against a fixed Vocabulary (spec
// §4.6 "encode_text"). An Encoder is safe for concurrent use: every
// Encode call borrows an independent slot (pattern clones plus a
// merge-encoder instance) from an internal pool, so concurrent callers
// never contend on shared regex or merge scratch state.
type Encoder struct {
	vocab *Vocabulary
	pool  *encoderPool
	cache *lru.Cache[string, []TokenID]
}

// New builds an Encoder over vocab, compiling the pretokenization
// pattern and the special-token alternation once and cloning them per
// pool slot (spec §4.2, §4.6).
func New(vocab *Vocabulary, opts ...Option) (*Encoder, error) {
	if vocab == nil {
		return nil, NewConfigError("vocab", nil, fmt.Errorf("%w: vocabulary must not be nil", ErrInvalidOption))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	spanning := vocab.Spanning()
	wordPattern, err := pattern.Compile(spanning.Pattern)
	if err != nil {
		return nil, NewConfigError("pattern", spanning.Pattern, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}

	var specialPattern *pattern.Pattern
	if len(spanning.Specials) > 0 {
		// Longest-literal-first order from Vocabulary is preserved by
		// regexp2 alternation, which tries branches left to right.
		parts := make([]string, len(spanning.Specials))
		for i, s := range spanning.Specials {
			parts[i] = regexp.QuoteMeta(string(s.Bytes))
		}
		specialPattern, err = pattern.Compile(strings.Join(parts, "|"))
		if err != nil {
			return nil, NewConfigError("specials_pattern", nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
		}
	}

	pool, err := newEncoderPool(wordPattern, specialPattern, cfg.strategy, cfg.poolSize)
	if err != nil {
		return nil, err
	}

	e := &Encoder{vocab: vocab, pool: pool}
	if cfg.cacheSize > 0 {
		c, err := lru.New[string, []TokenID](cfg.cacheSize)
		if err != nil {
			return nil, NewConfigError("cache_size", cfg.cacheSize, err)
		}
		e.cache = c
	}
	Logger.Debug().
		Int("pool_size", pool.len()).
		Str("strategy", string(cfg.strategy)).
		Int("cache_size", cfg.cacheSize).
		Msg("encoder constructed")
	return e, nil
}

// Encode tokenizes text into token IDs (spec §4.6). The returned slice
// is freshly allocated and owned by the caller.
func (e *Encoder) Encode(text string) []TokenID {
	slot := e.pool.get()
	out := make([]TokenID, 0, len(text)/3+1)

	slot.spanner.ForEachSplitSpan(text, func(s span.Span) bool {
		switch s.Kind {
		case span.Special:
			lit := s.Bytes(text)
			id, ok := e.vocab.LookupSpecial([]byte(lit))
			if !ok {
				panicInternal("encode", lit, ErrSpecialNotFound)
			}
			out = append(out, id)
		case span.Word:
			out = append(out, e.encodeWord(slot, s.Bytes(text))...)
		case span.Gap:
			// Bytes the word regex did not cover produce no tokens. This
			// never occurs for cl100k_base/o200k_base (their word regex
			// always matches); for other patterns the gap bytes are
			// absent from the output.
		}
		return true
	})
	return out
}

// encodeWord resolves one Word span: a whole-word vocabulary hit short
// circuits the merge loop; otherwise an optional whole-span cache is
// consulted before falling through to the configured merge strategy.
func (e *Encoder) encodeWord(slot *encoderSlot, word string) []TokenID {
	if id, ok := e.vocab.LookupWord([]byte(word)); ok {
		return []TokenID{id}
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(word); ok {
			return cached
		}
	}
	merged := slot.merger.EncodeAppendCompoundSpan(e.vocab, []byte(word), nil)
	if e.cache != nil {
		e.cache.Add(word, merged)
	}
	return merged
}

// Vocabulary returns the Vocabulary this Encoder was built from.
func (e *Encoder) Vocabulary() *Vocabulary { return e.vocab }

// Decode looks up and concatenates the raw bytes for a sequence of token
// IDs (SPEC_FULL.md §12 "minimal Decoder"). It does not attempt to
// repair invalid UTF-8 produced by decoding a sub-span of a multi-byte
// rune; callers decoding partial sequences should expect that.
func (e *Encoder) Decode(ids []TokenID) ([]byte, error) {
	var out []byte
	for _, id := range ids {
		b, ok := e.vocab.Decode(id)
		if !ok {
			return nil, NewConfigError("token_id", id, ErrUnknownTokenID)
		}
		out = append(out, b...)
	}
	return out, nil
}
