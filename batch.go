package bpe

import "golang.org/x/sync/errgroup"

// EncodeBatch encodes texts concurrently, one goroutine per input,
// borrowing a pool slot each via the same discipline as Encode. Every
// input runs to completion regardless of another input's failure; if any
// input failed, EncodeBatch returns the first such failure by input
// index (not completion order), alongside the full result slice so
// callers can still inspect the texts that did succeed.
//
// The only failure mode Encode itself can hit is the "impossible"
// special/vocabulary desync it reports via panic(*InternalError);
// EncodeBatch recovers that per-input rather than letting it crash every
// other goroutine in the batch.
func (e *Encoder) EncodeBatch(texts []string) ([][]TokenID, error) {
	out := make([][]TokenID, len(texts))
	errs := make([]error, len(texts))

	var g errgroup.Group
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			out[i] = e.encodeRecovered(text, &errs[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// encodeRecovered runs Encode, converting an *InternalError panic into an
// error written to *errOut instead of propagating it. Any other panic
// (a real bug, not a modeled failure mode) is re-raised.
func (e *Encoder) encodeRecovered(text string, errOut *error) (ids []TokenID) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			*errOut = ie
		}
	}()
	return e.Encode(text)
}
