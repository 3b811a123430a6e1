package zipwrite

import "encoding/binary"

// ZIP record signatures and field values. Every member is written as
// method 8 (deflate) with flag bit 3 set, version-needed 45, and a
// ZIP64 extra in the central directory; the 32-bit size and offset
// fields carry 0xFFFFFFFF sentinels directing readers to the extras.
const (
	sigLocalFileHeader  = 0x04034b50
	sigCentralDirHeader = 0x02014b50
	sigEOCD             = 0x06054b50
	sigEOCD64           = 0x06064b50
	sigEOCD64Locator    = 0x07064b50

	zipVersion         = 45 // ZIP64
	fileSystemFAT      = 0
	methodDeflate      = 8
	flagDataDescriptor = 1 << 3

	zip64ExtraID  = 0x0001
	zip64ExtraLen = 28 // header id + length + three uint64 fields

	localFileHeaderLen  = 30
	dataDescriptorLen   = 12
	centralDirHeaderLen = 46
	eocd64Len           = 56
	eocd64LocatorLen    = 20
	eocdLen             = 22

	sentinel32 = ^uint32(0)
)

// appendLocalFileHeader appends the 30-byte local file header. CRC and
// sizes are zero; the data descriptor written after the member body
// carries them.
func appendLocalFileHeader(b []byte, nameLen int, dosTime, dosDate uint16) []byte {
	b = binary.LittleEndian.AppendUint32(b, sigLocalFileHeader)
	b = binary.LittleEndian.AppendUint16(b, zipVersion)
	b = binary.LittleEndian.AppendUint16(b, flagDataDescriptor)
	b = binary.LittleEndian.AppendUint16(b, methodDeflate)
	b = binary.LittleEndian.AppendUint16(b, dosTime)
	b = binary.LittleEndian.AppendUint16(b, dosDate)
	b = binary.LittleEndian.AppendUint32(b, 0) // crc
	b = binary.LittleEndian.AppendUint32(b, 0) // compressed size
	b = binary.LittleEndian.AppendUint32(b, 0) // uncompressed size
	b = binary.LittleEndian.AppendUint16(b, uint16(nameLen))
	b = binary.LittleEndian.AppendUint16(b, 0) // extra field length
	return b
}

// appendDataDescriptor appends the signatureless 12-byte descriptor.
// The size fields hold sentinels; the true 64-bit sizes live in the
// central directory's ZIP64 extra.
func appendDataDescriptor(b []byte, crc uint32) []byte {
	b = binary.LittleEndian.AppendUint32(b, crc)
	b = binary.LittleEndian.AppendUint32(b, sentinel32) // compressed size
	b = binary.LittleEndian.AppendUint32(b, sentinel32) // uncompressed size
	return b
}

// appendCentralDirHeader appends the 46-byte central directory file
// header. The extra-field length is fixed at the ZIP64 extra size.
func appendCentralDirHeader(b []byte, nameLen int, dosTime, dosDate uint16, crc uint32) []byte {
	b = binary.LittleEndian.AppendUint32(b, sigCentralDirHeader)
	b = append(b, zipVersion, fileSystemFAT) // version made by, host
	b = binary.LittleEndian.AppendUint16(b, zipVersion)
	b = binary.LittleEndian.AppendUint16(b, flagDataDescriptor)
	b = binary.LittleEndian.AppendUint16(b, methodDeflate)
	b = binary.LittleEndian.AppendUint16(b, dosTime)
	b = binary.LittleEndian.AppendUint16(b, dosDate)
	b = binary.LittleEndian.AppendUint32(b, crc)
	b = binary.LittleEndian.AppendUint32(b, sentinel32) // compressed size
	b = binary.LittleEndian.AppendUint32(b, sentinel32) // uncompressed size
	b = binary.LittleEndian.AppendUint16(b, uint16(nameLen))
	b = binary.LittleEndian.AppendUint16(b, zip64ExtraLen)
	b = binary.LittleEndian.AppendUint16(b, 0)          // comment length
	b = binary.LittleEndian.AppendUint16(b, 0)          // start disk
	b = binary.LittleEndian.AppendUint16(b, 0)          // internal attributes
	b = binary.LittleEndian.AppendUint32(b, 0)          // external attributes
	b = binary.LittleEndian.AppendUint32(b, sentinel32) // local header offset
	return b
}

// appendZip64Extra appends the 28-byte ZIP64 extended information
// extra: uncompressed size, compressed size, local header offset.
func appendZip64Extra(b []byte, uncompressed, compressed, headerOffset uint64) []byte {
	b = binary.LittleEndian.AppendUint16(b, zip64ExtraID)
	b = binary.LittleEndian.AppendUint16(b, zip64ExtraLen-4)
	b = binary.LittleEndian.AppendUint64(b, uncompressed)
	b = binary.LittleEndian.AppendUint64(b, compressed)
	b = binary.LittleEndian.AppendUint64(b, headerOffset)
	return b
}

// appendEOCD64 appends the 56-byte ZIP64 end of central directory
// record. The leading size field excludes the signature and itself
// (APPNOTE 4.3.14.1).
func appendEOCD64(b []byte, numFiles, cdSize, cdOffset uint64) []byte {
	b = binary.LittleEndian.AppendUint32(b, sigEOCD64)
	b = binary.LittleEndian.AppendUint64(b, eocd64Len-12)
	b = binary.LittleEndian.AppendUint16(b, zipVersion) // version made by
	b = binary.LittleEndian.AppendUint16(b, zipVersion) // version needed
	b = binary.LittleEndian.AppendUint32(b, 0)          // this disk
	b = binary.LittleEndian.AppendUint32(b, 0)          // central dir disk
	b = binary.LittleEndian.AppendUint64(b, numFiles)   // entries on disk
	b = binary.LittleEndian.AppendUint64(b, numFiles)   // entries total
	b = binary.LittleEndian.AppendUint64(b, cdSize)
	b = binary.LittleEndian.AppendUint64(b, cdOffset)
	return b
}

// appendEOCD64Locator appends the 20-byte ZIP64 EOCD locator.
func appendEOCD64Locator(b []byte, eocd64Offset uint64) []byte {
	b = binary.LittleEndian.AppendUint32(b, sigEOCD64Locator)
	b = binary.LittleEndian.AppendUint32(b, 0) // eocd64 disk
	b = binary.LittleEndian.AppendUint64(b, eocd64Offset)
	b = binary.LittleEndian.AppendUint32(b, 1) // total disks
	return b
}

// appendEOCD appends the classic 22-byte end of central directory
// record with every 16- and 32-bit field saturated to 0xFF sentinels,
// directing readers to the ZIP64 records. Only the signature and the
// zero comment length are real.
func appendEOCD(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, sigEOCD)
	for range eocdLen - 6 {
		b = append(b, 0xff)
	}
	b = binary.LittleEndian.AppendUint16(b, 0) // comment length
	return b
}
