package bpe

import (
	"fmt"
	"sort"
)

// SpecialToken pairs a special-token literal with its assigned ID. Order
// matters only for the regex alternation built from it (longest literal
// first, so a prefix special never masks a longer one).
type SpecialToken struct {
	Bytes []byte
	ID    TokenID
}

// SpanningConfig is the pretokenization configuration: the regex pattern
// text plus the ordered list of special-token literals recognized before
// the word regex runs.
type SpanningConfig struct {
	Pattern  string
	Specials []SpecialToken
}

// Vocabulary is an immutable, thread-safe bundle of byte-sequence/token-ID
// maps, merge priorities and special tokens. Values are read-only after
// construction and require no locking to share across goroutines.
type Vocabulary struct {
	byteVocab [256]TokenID
	tokenVocab map[string]TokenID // word bytes -> id
	decode     map[TokenID][]byte // id -> word bytes, includes specials
	pairRanks  map[pairKey]TokenID
	specialVocab map[string]TokenID
	specialsOrdered []SpecialToken
	spanning SpanningConfig
	size     int
}

// VocabularyConfig is the external-loader interface this package consumes:
// an already-parsed vocabulary. Loading from disk, base64/tiktoken file
// formats, and pretrained-vocabulary download/caching are out of scope for
// this package (spec §1); callers parse those formats themselves and hand
// the result here.
type VocabularyConfig struct {
	// TokenRanks maps every learned byte sequence (including all 256
	// single bytes) to its token ID. Per the standard OpenAI-style
	// convention this package relies on, IDs must equal merge order:
	// token A's id is smaller than token B's id iff A was learned before
	// B. This lets pair_ranks reuse the resulting token's own ID as its
	// merge priority (spec §9).
	TokenRanks map[string]TokenID

	// Specials maps special-token literal strings to their IDs. Must be
	// disjoint from the keys of TokenRanks.
	Specials map[string]TokenID

	// Pattern is the pretokenization regex pattern, as understood by the
	// pattern engine (package pattern, backed by regexp2).
	Pattern string
}

// NewVocabulary validates cfg against the invariants of spec §3 and
// derives the pair_ranks merge-priority table, returning a read-only
// Vocabulary ready to share across goroutines.
//
// Validation is exhaustive and construction-only: once built, a
// Vocabulary can never fail a lookup in a way that isn't itself a bug (see
// ErrSpecialNotFound).
func NewVocabulary(cfg VocabularyConfig) (*Vocabulary, error) {
	if len(cfg.TokenRanks) == 0 {
		return nil, NewConfigError("token_ranks", nil, ErrMissingByteFallback)
	}

	v := &Vocabulary{
		tokenVocab:   make(map[string]TokenID, len(cfg.TokenRanks)),
		decode:       make(map[TokenID][]byte, len(cfg.TokenRanks)+len(cfg.Specials)),
		pairRanks:    make(map[pairKey]TokenID, len(cfg.TokenRanks)),
		specialVocab: make(map[string]TokenID, len(cfg.Specials)),
	}

	needed := uint64(len(cfg.TokenRanks) + len(cfg.Specials))
	if needed > maxTokenID {
		return nil, NewCapacityError(int(needed), int(maxTokenID))
	}

	// byte_vocab must be total: every byte 0..256 has an id.
	for b := 0; b < 256; b++ {
		id, ok := cfg.TokenRanks[string([]byte{byte(b)})]
		if !ok {
			return nil, NewConfigError("token_ranks", fmt.Sprintf("byte %d", b), ErrMissingByteFallback)
		}
		v.byteVocab[b] = id
	}

	for word, id := range cfg.TokenRanks {
		if id == NoToken {
			return nil, NewConfigError("token_ranks", word, ErrCapacityExceeded)
		}
		if existing, dup := v.decode[id]; dup {
			return nil, NewConfigError("token_ranks", word, fmt.Errorf("%w: id %d already maps to %q", ErrDuplicateToken, id, existing))
		}
		v.tokenVocab[word] = id
		v.decode[id] = []byte(word)
	}

	for lit, id := range cfg.Specials {
		if _, clash := v.tokenVocab[lit]; clash {
			return nil, NewConfigError("specials", lit, fmt.Errorf("%w: special overlaps token_vocab", ErrDuplicateToken))
		}
		if existing, dup := v.decode[id]; dup {
			return nil, NewConfigError("specials", lit, fmt.Errorf("%w: id %d already maps to %q", ErrDuplicateToken, id, existing))
		}
		v.specialVocab[lit] = id
		v.decode[id] = []byte(lit)
		v.specialsOrdered = append(v.specialsOrdered, SpecialToken{Bytes: []byte(lit), ID: id})
	}
	// Longest-literal-first so the regex alternation never lets a prefix
	// special mask a longer one (spec §3).
	sort.Slice(v.specialsOrdered, func(i, j int) bool {
		return len(v.specialsOrdered[i].Bytes) > len(v.specialsOrdered[j].Bytes)
	})

	if err := v.derivePairRanks(); err != nil {
		return nil, err
	}

	v.spanning = SpanningConfig{Pattern: cfg.Pattern, Specials: v.specialsOrdered}
	v.size = len(v.tokenVocab) + len(v.specialVocab)
	Logger.Debug().
		Int("tokens", len(v.tokenVocab)).
		Int("specials", len(v.specialVocab)).
		Int("pair_ranks", len(v.pairRanks)).
		Msg("vocabulary constructed")
	return v, nil
}

// derivePairRanks recovers, for every multi-byte token w, the pair (a, b)
// of already-learned tokens it was merged from, and records
// pair_ranks[(id(a), id(b))] = id(w). This is the standard technique for
// reconstructing merge rules from a ranks-only tiktoken-style vocabulary:
// replaying the greedy BPE merge over w's raw bytes, but only considering
// merges learned strictly before w itself, must converge to exactly the
// two parts w was built from (spec §3 invariant).
func (v *Vocabulary) derivePairRanks() error {
	for word, id := range v.tokenVocab {
		if len(word) <= 1 {
			continue
		}
		parts := v.simulateMerge([]byte(word), id)
		if len(parts) != 2 {
			return NewConfigError("token_ranks", word, fmt.Errorf("%w: could not decompose into two learned tokens", ErrMergeOrderInvalid))
		}
		aID, ok := v.tokenVocab[string(parts[0])]
		if !ok {
			return NewConfigError("token_ranks", word, fmt.Errorf("%w: left part %q not in vocabulary", ErrMergeOrderInvalid, parts[0]))
		}
		bID, ok := v.tokenVocab[string(parts[1])]
		if !ok {
			return NewConfigError("token_ranks", word, fmt.Errorf("%w: right part %q not in vocabulary", ErrMergeOrderInvalid, parts[1]))
		}
		if id <= aID || id <= bID {
			return NewConfigError("token_ranks", word, ErrMergeOrderInvalid)
		}
		key := makePairKey(aID, bID)
		if existing, dup := v.pairRanks[key]; dup && existing != id {
			return NewConfigError("token_ranks", word, fmt.Errorf("%w: pair already merges to %d", ErrDuplicateToken, existing))
		}
		v.pairRanks[key] = id
	}
	return nil
}

// simulateMerge replays the greedy byte-pair merge over raw, using only
// tokens whose id is strictly less than limit, and returns the resulting
// parts. For a well-formed vocabulary entry this converges to exactly two
// parts: the pair the token was itself merged from.
func (v *Vocabulary) simulateMerge(raw []byte, limit TokenID) [][]byte {
	parts := make([][]byte, len(raw))
	for i, b := range raw {
		parts[i] = raw[i : i+1]
		_ = b
	}

	for len(parts) > 1 {
		bestIdx := -1
		var bestRank TokenID = NoToken
		for i := 0; i < len(parts)-1; i++ {
			joined := append(append([]byte{}, parts[i]...), parts[i+1]...)
			id, ok := v.tokenVocab[string(joined)]
			if !ok || id >= limit {
				continue
			}
			if bestIdx == -1 || id < bestRank {
				bestIdx = i
				bestRank = id
			}
		}
		if bestIdx == -1 {
			break
		}
		merged := append(append([]byte{}, parts[bestIdx]...), parts[bestIdx+1]...)
		next := make([][]byte, 0, len(parts)-1)
		next = append(next, parts[:bestIdx]...)
		next = append(next, merged)
		next = append(next, parts[bestIdx+2:]...)
		parts = next
	}
	return parts
}

// LookupWord returns the whole-word token ID for an exact byte-sequence
// match, if any.
func (v *Vocabulary) LookupWord(word []byte) (TokenID, bool) {
	id, ok := v.tokenVocab[string(word)]
	return id, ok
}

// LookupPair returns the merge rank (== resulting token id) for an ordered
// pair, if the vocabulary learned that merge.
func (v *Vocabulary) LookupPair(a, b TokenID) (TokenID, bool) {
	id, ok := v.pairRanks[makePairKey(a, b)]
	return id, ok
}

// LookupSpecial returns the token ID for a special-token literal, if any.
func (v *Vocabulary) LookupSpecial(lit []byte) (TokenID, bool) {
	id, ok := v.specialVocab[string(lit)]
	return id, ok
}

// AppendByteTokens pushes one token ID per input byte using the
// byte-level fallback alphabet, which is guaranteed total by
// construction.
func (v *Vocabulary) AppendByteTokens(data []byte, out []TokenID) []TokenID {
	for _, b := range data {
		out = append(out, v.byteVocab[b])
	}
	return out
}

// Decode looks up the raw bytes for a single token ID, across both
// token_vocab and special_vocab.
func (v *Vocabulary) Decode(id TokenID) ([]byte, bool) {
	b, ok := v.decode[id]
	return b, ok
}

// Spanning returns the pretokenization configuration (pattern text plus
// ordered specials) this vocabulary was built with.
func (v *Vocabulary) Spanning() SpanningConfig { return v.spanning }

// Size returns the total number of distinct token IDs, including
// specials.
func (v *Vocabulary) Size() int { return v.size }
