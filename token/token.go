// Package token defines the TokenID primitive shared by the vocabulary,
// the span encoders, and the pooling/batch layers. It is split out from
// the root package so that internal/merge's span encoders can depend on
// it without importing the root package (which itself depends on
// internal/merge), avoiding an import cycle.
package token

// ID identifies a vocabulary entry: a byte-level fallback token, a
// learned multi-byte token, or a special token. The reserved sentinel
// value None ("no such pair / no such rank") is the type's maximum,
// matching the convention in spec §3.
//
// 32 bits comfortably covers every published tiktoken-style vocabulary
// (cl100k_base tops out around 100k entries, o200k_base around 200k); a
// distinct 16-bit storage type was not introduced since nothing in this
// core specializes on width.
type ID uint32

// None is the reserved sentinel meaning "no such pair / no such rank".
const None ID = ^ID(0)

// MaxAssignable is the largest value an encoder may legitimately assign,
// reserving None as a sentinel.
const MaxAssignable = uint64(None) - 1

// PairKey packs an ordered pair of token IDs into a single map key,
// avoiding a struct key's extra hashing cost in the merge-rank table.
type PairKey uint64

// MakePairKey builds the PairKey for the ordered pair (a, b).
func MakePairKey(a, b ID) PairKey {
	return PairKey(uint64(a)<<32 | uint64(b))
}
