package deflate

// RFC 1951 section 3.2.5 canonical tables. lengthBase and distBase
// carry one extra terminator entry so code lookup can scan for the
// first base exceeding the value.
var (
	lengthBase = [30]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43,
		51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258, 259,
	}
	lengthExtra = [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
		4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
	distBase = [31]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257,
		385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289,
		16385, 24577, 32768,
	}
	distExtra = [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
		9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// addBits appends the low n bits of code to the bitstream. Callers
// pass Huffman codes already bit-reversed; extra-bit fields go in as
// stored, LSB first.
func (e *Encoder) addBits(code uint32, n uint) {
	e.bitbuf |= code << e.bitcount
	e.bitcount += n
	e.flushBits()
}

// flushBits drains whole bytes from the bit accumulator into the
// output buffer, flushing the buffer to the sink when it fills.
// bitcount is below 8 on return.
func (e *Encoder) flushBits() {
	for e.bitcount >= 8 {
		e.out[e.outCursor] = byte(e.bitbuf)
		e.outCursor++
		if e.outCursor == outSize {
			e.flushCompressed()
		}
		e.bitbuf >>= 8
		e.bitcount -= 8
	}
}

// flushCompressed hands the buffered output to the sink and advances
// the compressed-size counter.
func (e *Encoder) flushCompressed() {
	if e.outCursor == 0 {
		return
	}
	e.compressedN += uint64(e.outCursor)
	_, _ = e.sw.Write(e.out[:e.outCursor]) // sink latches errors
	e.outCursor = 0
}

// reverse mirrors the low n bits of code. DEFLATE transmits Huffman
// codes MSB first into an LSB-first bitstream.
func reverse(code uint32, n uint) uint32 {
	var r uint32
	for ; n > 0; n-- {
		r = r<<1 | code&1
		code >>= 1
	}
	return r
}

// emitSymbol writes a literal/length symbol with the fixed Huffman
// code assignment of RFC 1951 section 3.2.6.
func (e *Encoder) emitSymbol(n int) {
	switch {
	case n <= 143:
		e.addBits(reverse(uint32(0x030+n), 8), 8)
	case n <= 255:
		e.addBits(reverse(uint32(0x190+n-144), 9), 9)
	case n <= 279:
		e.addBits(reverse(uint32(0x000+n-256), 7), 7)
	default:
		e.addBits(reverse(uint32(0x0c0+n-280), 8), 8)
	}
}

// emitLiteral writes one input byte as a literal symbol.
func (e *Encoder) emitLiteral(b byte) {
	e.emitSymbol(int(b))
}

// emitMatch writes a back-reference of the given length and distance:
// length symbol plus extra bits, then the fixed 5-bit distance code
// plus extra bits.
func (e *Encoder) emitMatch(length, dist int) {
	var j int
	for j = 0; length > int(lengthBase[j+1])-1; j++ {
	}
	e.emitSymbol(257 + j)
	if lengthExtra[j] > 0 {
		e.addBits(uint32(length-int(lengthBase[j])), uint(lengthExtra[j]))
	}
	for j = 0; dist > int(distBase[j+1])-1; j++ {
	}
	e.addBits(reverse(uint32(j), 5), 5)
	if distExtra[j] > 0 {
		e.addBits(uint32(dist-int(distBase[j])), uint(distExtra[j]))
	}
}
