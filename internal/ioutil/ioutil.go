// Package ioutil provides the sticky byte-counting writer that sits
// between the archive and its output sink.
package ioutil

import "io"

// StickyWriter wraps a writer, counts bytes written, and latches the
// first error. Once an error has occurred every subsequent Write
// short-circuits to that error without touching the underlying writer,
// so callers on a hot path may write unconditionally and check Err at
// operation boundaries.
type StickyWriter struct {
	W   io.Writer
	N   uint64
	Err error
}

// Write implements io.Writer. A short write with no explicit error
// latches io.ErrShortWrite.
func (sw *StickyWriter) Write(p []byte) (int, error) {
	if sw.Err != nil {
		return 0, sw.Err
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := sw.W.Write(p)
	if n > 0 {
		sw.N += uint64(n)
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	sw.Err = err
	return n, err
}
