package bpe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Scanner streams token IDs out of an io.Reader following the
// bufio.Scanner convention: call Scan in a loop, read Token() after each
// successful call (SPEC_FULL.md §12 "streaming Scanner").
//
// It buffers input until it finds a tokenization boundary — a
// whitespace byte, or (once the buffer has grown large) any complete
// UTF-8 character boundary — so a chunk split never lands inside a
// multi-byte rune. Each chunk is encoded on its own, so a split can still
// fall inside a run the pretokenizer would have kept as one word, and the
// tokens then differ from a single Encode over the whole input.
type Scanner struct {
	enc *Encoder
	r   *bufio.Reader

	textBuf  bytes.Buffer
	tokens   []TokenID
	tokIndex int
	pending  []byte

	err  error
	done bool

	bufSize   int
	maxBuffer int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScannerBufferSize sets the internal read buffer size. Default 4096.
func WithScannerBufferSize(size int) ScannerOption {
	return func(s *Scanner) {
		if size > 0 {
			s.bufSize = size
		}
	}
}

// WithScannerMaxBuffer caps how much unconsumed input the Scanner will
// accumulate before forcing a tokenization boundary, bounding memory use
// on pathological inputs (e.g. text with no whitespace at all). Default
// 1MiB.
func WithScannerMaxBuffer(size int) ScannerOption {
	return func(s *Scanner) {
		if size > 0 {
			s.maxBuffer = size
		}
	}
}

// NewScanner builds a Scanner reading from r and tokenizing with enc.
func (e *Encoder) NewScanner(r io.Reader, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		enc:       e,
		tokens:    make([]TokenID, 0, 32),
		bufSize:   4096,
		maxBuffer: 1024 * 1024,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.r = bufio.NewReaderSize(r, s.bufSize)
	return s
}

// Scan advances to the next token, returning false at EOF or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.tokIndex < len(s.tokens) {
		s.tokIndex++
		return true
	}
	if s.done && s.textBuf.Len() == 0 && s.tokIndex >= len(s.tokens) {
		return false
	}

	s.tokens = s.tokens[:0]
	s.tokIndex = 0

	for {
		if err := s.readAndAccumulate(); err != nil {
			s.err = &ScanError{Offset: int64(s.textBuf.Len()), Text: s.textBuf.String(), Err: err}
			return false
		}

		if s.tokenizeBuffer() {
			s.tokIndex = 1
			return true
		}
		// A chunk can encode to no tokens (e.g. only gap bytes); keep
		// reading until input is exhausted.
		if s.done && s.textBuf.Len() == 0 && len(s.pending) == 0 {
			return false
		}
	}
}

// Token returns the most recently scanned token ID. Valid only after a
// successful call to Scan.
func (s *Scanner) Token() TokenID {
	if s.tokIndex > 0 && s.tokIndex <= len(s.tokens) {
		return s.tokens[s.tokIndex-1]
	}
	return NoToken
}

// Err returns the first error encountered during scanning, or nil at a
// clean EOF.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

func (s *Scanner) readAndAccumulate() error {
	for {
		n, err := s.readChunk()
		if s.textBuf.Len() >= s.maxBuffer {
			s.truncateToUTF8Boundary()
			return nil
		}
		if err != nil {
			return err
		}
		if s.done {
			return nil
		}
		if n > 0 && s.hasTokenizationBoundary() {
			return nil
		}
	}
}

func (s *Scanner) readChunk() (int, error) {
	buf := make([]byte, s.bufSize)
	n, err := s.r.Read(buf)
	if n > 0 {
		toWrite := buf[:n]
		if len(s.pending) > 0 {
			toWrite = append(s.pending, toWrite...)
			s.pending = nil
		}
		toWrite = s.capToMaxBuffer(toWrite)
		s.textBuf.Write(toWrite)
	}
	if err == io.EOF {
		s.done = true
		if len(s.pending) > 0 {
			s.textBuf.Write(s.pending)
			s.pending = nil
		}
		return n, nil
	}
	return n, err
}

// capToMaxBuffer trims toWrite so textBuf never exceeds maxBuffer,
// stashing any UTF-8 tail it cuts off in s.pending for the next read.
func (s *Scanner) capToMaxBuffer(toWrite []byte) []byte {
	if s.textBuf.Len()+len(toWrite) <= s.maxBuffer {
		return toWrite
	}
	maxWrite := s.maxBuffer - s.textBuf.Len()
	if maxWrite <= 0 || maxWrite >= len(toWrite) {
		return toWrite
	}
	boundary := lastUTF8Boundary(toWrite, maxWrite)
	s.pending = append([]byte(nil), toWrite[boundary:]...)
	return toWrite[:boundary]
}

// truncateToUTF8Boundary is called once textBuf has hit maxBuffer: it
// moves any trailing partial rune back into s.pending so tokenizeBuffer
// never sees a truncated UTF-8 sequence.
func (s *Scanner) truncateToUTF8Boundary() {
	buf := s.textBuf.Bytes()
	if len(buf) == 0 || len(s.pending) > 0 {
		return
	}
	cut := lastCompleteUTF8End(buf)
	if cut < len(buf) {
		s.pending = append([]byte(nil), buf[cut:]...)
		s.textBuf.Truncate(cut)
	}
}

func (s *Scanner) tokenizeBuffer() bool {
	text := s.textBuf.String()
	if text == "" {
		return false
	}
	s.tokens = s.enc.Encode(text)
	s.textBuf.Reset()
	return len(s.tokens) > 0
}

// hasTokenizationBoundary reports whether the buffer currently ends at a
// safe place to cut: a whitespace byte always qualifies; once the buffer
// has grown past half the read buffer size, any complete UTF-8 character
// boundary does too (it bounds latency on inputs with long non-whitespace
// runs).
func (s *Scanner) hasTokenizationBoundary() bool {
	buf := s.textBuf.Bytes()
	if len(buf) == 0 {
		return false
	}
	last := buf[len(buf)-1]
	if last == ' ' || last == '\n' || last == '\t' || last == '\r' {
		return true
	}
	if lastCompleteUTF8End(buf) != len(buf) {
		return false // mid UTF-8 sequence
	}
	return s.textBuf.Len() > s.bufSize/2
}

// lastCompleteUTF8End returns the length of buf's longest prefix that
// ends on a complete UTF-8 character.
func lastCompleteUTF8End(buf []byte) int {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-4; i-- {
		b := buf[i]
		if b < 0x80 {
			return i + 1
		}
		if b&0xC0 != 0x80 {
			seqLen := utf8SeqLen(b)
			if i+seqLen <= len(buf) {
				return i + seqLen
			}
			return i
		}
	}
	return len(buf)
}

// lastUTF8Boundary returns the largest index <= maxBytes at which data
// can be safely split without cutting a multi-byte rune in half.
func lastUTF8Boundary(data []byte, maxBytes int) int {
	if maxBytes >= len(data) {
		return len(data)
	}
	for i := maxBytes; i > 0 && i > maxBytes-4; i-- {
		if data[i] < 0x80 || data[i]&0xC0 != 0x80 {
			return i
		}
	}
	return maxBytes
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// ScanError reports a streaming failure together with where it happened.
type ScanError struct {
	Offset int64
	Text   string
	Err    error
}

func (e *ScanError) Error() string {
	preview := e.Text
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	return fmt.Sprintf("bpe: scan error at offset %d (text: %q): %v", e.Offset, preview, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }
