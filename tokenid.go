package bpe

import "github.com/agentstation/bpe/token"

// TokenID identifies a vocabulary entry. See package token for the
// rationale behind splitting this type into its own package.
type TokenID = token.ID

// NoToken is the reserved sentinel meaning "no such pair / no such rank".
const NoToken = token.None

// maxTokenID is the largest value an encoder may legitimately assign,
// reserving NoToken as a sentinel.
const maxTokenID = token.MaxAssignable

// pairKey packs an ordered pair of token IDs into a single map key for the
// pair_ranks table, avoiding a struct key's extra hashing cost.
type pairKey = token.PairKey

func makePairKey(a, b TokenID) pairKey {
	return token.MakePairKey(a, b)
}
