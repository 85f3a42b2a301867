package bpe

import "github.com/agentstation/bpe/internal/merge"

// Strategy names one of the three interchangeable span-merge algorithms
// (spec §4.5). Re-exported from the internal merge package so callers
// never need to import it directly.
type Strategy = merge.Strategy

// The three span-merge strategies, see package internal/merge for their
// individual tradeoffs.
const (
	StrategySweep  = merge.StrategySweep
	StrategyHeap   = merge.StrategyHeap
	StrategyHybrid = merge.StrategyHybrid
)

// config collects the construction-time tunables of an Encoder. Zero
// value plus defaultConfig() is always valid.
type config struct {
	strategy  Strategy
	poolSize  int
	cacheSize int
}

func defaultConfig() config {
	return config{strategy: StrategyHybrid}
}

// Option configures an Encoder at construction time.
type Option func(*config) error

// WithStrategy selects which of the three interchangeable span-merge
// algorithms (spec §4.5) the encoder's per-thread pool instantiates.
// Defaults to StrategyHybrid.
func WithStrategy(s Strategy) Option {
	return func(c *config) error {
		switch s {
		case StrategySweep, StrategyHeap, StrategyHybrid:
			c.strategy = s
			return nil
		default:
			return NewConfigError("strategy", s, ErrInvalidOption)
		}
	}
}

// WithPoolSize sets the number of per-thread pattern/merge-encoder slots
// (spec §4.6 "thread-local setup"). n <= 0 defaults to
// runtime.GOMAXPROCS(0), capped at pattern.DefaultMaxPoolSize.
func WithPoolSize(n int) Option {
	return func(c *config) error {
		c.poolSize = n
		return nil
	}
}

// WithCacheSize enables an optional whole-span result cache holding up to
// n entries (SPEC_FULL.md §12 "whole-span cache"). n == 0 (the default)
// disables caching entirely; a negative n is rejected with
// ErrInvalidOption.
func WithCacheSize(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return NewConfigError("cache_size", n, ErrInvalidOption)
		}
		c.cacheSize = n
		return nil
	}
}
