package bpe

// Canonical OpenAI pretokenization patterns, shipped alongside the
// implementation per spec §6. Both require lookaround, which is why the
// pattern engine (package pattern) is built on regexp2 rather than the
// standard library's RE2-derived regexp package.
const (
	// PatternCL100K is the pretokenization pattern used by cl100k_base
	// (GPT-3.5/GPT-4). regexp2 (.NET-flavored regex) has no possessive
	// quantifier syntax, so the upstream pattern's `?+`/`++` atomic
	// quantifiers are written here as plain `?`/`+`; this only affects
	// backtracking performance on pathological input, never match results.
	PatternCL100K = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}|` + ` ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`

	// PatternO200K is the pretokenization pattern used by o200k_base
	// (GPT-4o) and o200k_harmony.
	PatternO200K = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?|` +
		`[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?|` +
		`\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n/]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

// Canonical special tokens shared by cl100k_base, o200k_base and
// o200k_harmony (spec §6). Model-specific extensions (e.g. harmony's
// channel/role tokens) are supplied by the caller alongside these.
const (
	EndOfText   = "<|endoftext|>"
	FimPrefix   = "<|fim_prefix|>"
	FimMiddle   = "<|fim_middle|>"
	FimSuffix   = "<|fim_suffix|>"
	EndOfPrompt = "<|endofprompt|>"
)
