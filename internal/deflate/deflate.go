// Package deflate implements a streaming DEFLATE encoder using fixed
// Huffman codes and an LZ77 match finder over a 32 KiB sliding window.
//
// The encoder emits exactly one final block per stream, trading ratio
// for simplicity. It is the compression engine behind zipwrite's
// archive members and is not a general-purpose flate replacement.
package deflate

import (
	"hash/crc32"

	"github.com/meigma/zipwrite/internal/ioutil"
)

const (
	windowSize = 32768 // history half; the full window buffer is twice this
	maxMatch   = 258
	minMatch   = 3

	hashBits = 14
	hashSize = 1 << hashBits
	hashMask = hashSize - 1

	// quality bounds the per-slot chain length: chains grow to 2*quality
	// entries, then the older half is discarded.
	quality  = 8
	chainCap = 2 * quality

	outSize = 32768

	endBlockMarker = 256
)

// Encoder compresses one archive member at a time. Reset starts a new
// member; Close terminates it. The encoder tracks the member's CRC-32
// and byte counts as input is consumed, so the caller can frame the
// compressed stream without buffering it.
//
// Compressed bytes go to the supplied StickyWriter. Once the writer has
// latched an error the encoder keeps running against dead air; callers
// observe the failure through the writer's Err.
type Encoder struct {
	sw *ioutil.StickyWriter

	bitbuf   uint32
	bitcount uint

	out       []byte // outSize bytes
	outCursor int

	// window[:windowSize] holds history, window[windowSize:] holds
	// input not yet compressed. inCursor indexes the upper half.
	window   []byte
	inCursor int

	// Flat hash-chain arena: chainCap window offsets per slot plus a
	// live count, so inserts never allocate.
	chains []uint16 // hashSize * chainCap
	counts []uint8  // hashSize

	crc           uint32
	compressedN   uint64
	uncompressedN uint64
}

// NewEncoder returns an Encoder writing compressed bytes to sw.
// Call Reset before feeding input.
func NewEncoder(sw *ioutil.StickyWriter) *Encoder {
	return &Encoder{
		sw:     sw,
		out:    make([]byte, outSize),
		window: make([]byte, 2*windowSize),
		chains: make([]uint16, hashSize*chainCap),
		counts: make([]uint8, hashSize),
	}
}

// Reset prepares the encoder for a new member and opens its DEFLATE
// block (BFINAL=1, BTYPE=01). Chain storage is kept; only the counts
// are cleared.
func (e *Encoder) Reset() {
	e.inCursor = 0
	e.outCursor = 0
	e.bitbuf = 0
	e.bitcount = 0
	e.crc = 0
	e.compressedN = 0
	e.uncompressedN = 0
	clear(e.counts)

	e.addBits(1, 1) // BFINAL
	e.addBits(1, 2) // BTYPE = 01, fixed Huffman
}

// Write batches p into the window, compressing each time the input
// half fills. The returned error is the sink's latched error, if any.
func (e *Encoder) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		batch := min(windowSize-e.inCursor, len(p))
		copy(e.window[windowSize+e.inCursor:], p[:batch])
		e.inCursor += batch
		if e.inCursor == windowSize {
			e.flushInput()
		}
		p = p[batch:]
	}
	return total, e.sw.Err
}

// Close compresses any residual input, emits the end-of-block symbol,
// pads the bitstream to a byte boundary, and flushes buffered output.
// The encoder may be reused with Reset afterwards.
func (e *Encoder) Close() error {
	e.flushInput()
	e.emitSymbol(endBlockMarker)
	for e.bitcount > 0 {
		e.addBits(0, 1)
	}
	e.flushCompressed()
	return e.sw.Err
}

// CRC32 returns the IEEE CRC-32 of the input consumed since Reset.
func (e *Encoder) CRC32() uint32 { return e.crc }

// CompressedN returns the compressed byte count since Reset.
func (e *Encoder) CompressedN() uint64 { return e.compressedN }

// UncompressedN returns the input byte count since Reset.
func (e *Encoder) UncompressedN() uint64 { return e.uncompressedN }

// flushInput compresses the pending input region, updates the CRC and
// size counters, and slides the window down so the region just
// consumed becomes history.
func (e *Encoder) flushInput() {
	dataLen := e.inCursor
	if dataLen == 0 {
		return
	}
	data := e.window[windowSize:]

	i := 0
	for i < dataLen-minMatch {
		h := int(hash3(data[i:]) & hashMask)
		best := minMatch
		bestLoc := -1
		base := h * chainCap
		for _, ofs := range e.chains[base : base+int(e.counts[h])] {
			// An offset above i still lies within 32 KiB of the
			// current position; anything at or below it has slid
			// out of reach.
			if int(ofs) > i {
				if n := matchLen(e.window[ofs:], data[i:], dataLen-i); n >= best {
					best = n
					bestLoc = int(ofs)
				}
			}
		}
		if e.counts[h] == chainCap {
			copy(e.chains[base:], e.chains[base+quality:base+chainCap])
			e.counts[h] = quality
		}
		e.chains[base+int(e.counts[h])] = uint16(i + windowSize)
		e.counts[h]++

		if bestLoc >= 0 {
			// Lazy match: if the next position hides a strictly
			// longer match, emit a literal now and take it then.
			h = int(hash3(data[i+1:]) & hashMask)
			base = h * chainCap
			for _, ofs := range e.chains[base : base+int(e.counts[h])] {
				if int(ofs) > i+1 {
					if matchLen(e.window[ofs:], data[i+1:], dataLen-i-1) > best {
						bestLoc = -1
						break
					}
				}
			}
		}

		if bestLoc >= 0 {
			e.emitMatch(best, i+windowSize-bestLoc)
			i += best
		} else {
			e.emitLiteral(data[i])
			i++
		}
	}

	// Trailing bytes too short to match.
	for ; i < dataLen; i++ {
		e.emitLiteral(data[i])
	}

	// Rewrite chains relative to the new window origin, dropping
	// offsets that fall off the back.
	for s := range hashSize {
		base := s * chainCap
		valid := 0
		for _, ofs := range e.chains[base : base+int(e.counts[s])] {
			if int(ofs) >= dataLen {
				e.chains[base+valid] = ofs - uint16(dataLen)
				valid++
			}
		}
		e.counts[s] = uint8(valid)
	}
	copy(e.window[:windowSize], e.window[dataLen:dataLen+windowSize])

	e.uncompressedN += uint64(dataLen)
	e.crc = crc32.Update(e.crc, crc32.IEEETable, data[:dataLen])
	e.inCursor = 0
}

// hash3 mixes the next three input bytes into a well-spread 32-bit
// value; callers mask it down to hashBits.
func hash3(p []byte) uint32 {
	h := uint32(p[0]) + uint32(p[1])<<8 + uint32(p[2])<<16
	h ^= h << 3
	h += h >> 5
	h ^= h << 4
	h += h >> 17
	h ^= h << 25
	h += h >> 6
	return h
}

// matchLen returns the common prefix length of a and b, capped at
// maxMatch and limit.
func matchLen(a, b []byte, limit int) int {
	if limit > maxMatch {
		limit = maxMatch
	}
	if limit > len(a) {
		limit = len(a)
	}
	i := 0
	for i < limit && a[i] == b[i] {
		i++
	}
	return i
}
