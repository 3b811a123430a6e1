package zipwrite

import (
	"io"
	"os"
	"time"

	"github.com/meigma/zipwrite/internal/deflate"
	"github.com/meigma/zipwrite/internal/ioutil"
)

// maxNameLen is the longest member name the 16-bit header field can
// carry while leaving 0xFFFF free as a ZIP64 sentinel.
const maxNameLen = 0xfffe

// Archive writes a ZIP64 archive to a sink in a single pass.
//
// Members are opened with Begin, fed with Write or WriteString, and
// implicitly closed by the next Begin or by Finish. Output bytes reach
// the sink in strict archive order: local headers, compressed bodies,
// data descriptors, then at Finish the central directory and end
// records.
//
// A sink error latches the archive as failed: subsequent Begin and
// Write calls return the error without side effects, and Finish still
// releases the sink before reporting it.
type Archive struct {
	sw     ioutil.StickyWriter
	closer io.Closer
	enc    *deflate.Encoder

	centralDir []byte
	numFiles   uint64

	dosDate uint16
	dosTime uint16

	name        string // active member name, "" when none
	startOffset uint64
	active      bool
	finished    bool
}

// Create opens path for writing and returns an Archive targeting it.
// The file is closed by Finish (or Close).
func Create(path string, opts ...Option) (*Archive, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	a, err := New(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

// New returns an Archive writing to w. If w implements io.Closer it is
// closed by Finish (or Close).
//
// The archive's member timestamp is captured once, here; use
// WithModTime to override the wall clock.
func New(w io.Writer, opts ...Option) (*Archive, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	cfg := config{modTime: time.Now()}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Archive{sw: ioutil.StickyWriter{W: w}}
	if c, ok := w.(io.Closer); ok {
		a.closer = c
	}
	a.dosDate, a.dosTime = dosDateTime(cfg.modTime)
	a.enc = deflate.NewEncoder(&a.sw)
	return a, nil
}

// Begin starts a new member, ending the active one if any. Names
// longer than 65534 bytes are truncated; they are written as supplied
// otherwise, with no encoding translation.
func (a *Archive) Begin(name string) error {
	if a.finished {
		return ErrFinished
	}
	a.endEntry()
	if name == "" {
		return ErrEmptyName
	}
	if a.sw.Err != nil {
		return a.sw.Err
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	offset := a.sw.N
	hdr := appendLocalFileHeader(make([]byte, 0, localFileHeaderLen+len(name)), len(name), a.dosTime, a.dosDate)
	hdr = append(hdr, name...)
	if _, err := a.sw.Write(hdr); err != nil {
		return err
	}

	a.name = name
	a.startOffset = offset
	a.active = true
	a.numFiles++
	a.enc.Reset()
	return nil
}

// Write appends p to the active member. It implements io.Writer.
// p is not retained after Write returns.
func (a *Archive) Write(p []byte) (int, error) {
	if a.finished {
		return 0, ErrFinished
	}
	if !a.active {
		return 0, ErrNoEntry
	}
	if a.sw.Err != nil {
		return 0, a.sw.Err
	}
	return a.enc.Write(p)
}

// WriteString appends s to the active member.
func (a *Archive) WriteString(s string) (int, error) {
	return a.Write([]byte(s))
}

// endEntry terminates the active member: closes its DEFLATE block,
// writes the data descriptor, and records the central directory entry.
// On a latched sink error the entry is skipped; Finish reports the
// failure.
func (a *Archive) endEntry() {
	if !a.active {
		return
	}
	a.active = false

	if err := a.enc.Close(); err != nil {
		return
	}

	desc := appendDataDescriptor(make([]byte, 0, dataDescriptorLen), a.enc.CRC32())
	if _, err := a.sw.Write(desc); err != nil {
		return
	}

	a.centralDir = appendCentralDirHeader(a.centralDir, len(a.name), a.dosTime, a.dosDate, a.enc.CRC32())
	a.centralDir = append(a.centralDir, a.name...)
	a.centralDir = appendZip64Extra(a.centralDir, a.enc.UncompressedN(), a.enc.CompressedN(), a.startOffset)
	a.name = ""
}

// Finish ends the active member, writes the central directory, the
// ZIP64 end records, and the classic EOCD, then closes the sink. It
// returns the first sink error encountered over the archive's life.
// Calling Finish again returns ErrFinished.
func (a *Archive) Finish() error {
	if a.finished {
		return ErrFinished
	}
	a.endEntry()
	a.finished = true

	cdOffset := a.sw.N
	cdSize := uint64(len(a.centralDir))
	_, _ = a.sw.Write(a.centralDir)

	footer := appendEOCD64(make([]byte, 0, eocd64Len+eocd64LocatorLen+eocdLen), a.numFiles, cdSize, cdOffset)
	footer = appendEOCD64Locator(footer, cdOffset+cdSize)
	footer = appendEOCD(footer)
	_, _ = a.sw.Write(footer)

	err := a.sw.Err
	a.centralDir = nil
	if a.closer != nil {
		if cerr := a.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Close abandons the archive without writing the footer, releasing the
// sink. It is a no-op after Finish, so it is safe to defer alongside a
// final Finish call.
func (a *Archive) Close() error {
	if a.finished {
		return nil
	}
	a.finished = true
	a.centralDir = nil
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
