package deflate

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"math/rand"
	"slices"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zipwrite/internal/ioutil"
)

// compress runs data through a fresh encoder and returns the raw
// DEFLATE stream plus the encoder for counter inspection.
func compress(t *testing.T, data []byte) ([]byte, *Encoder) {
	t.Helper()

	var buf bytes.Buffer
	e := NewEncoder(&ioutil.StickyWriter{W: &buf})
	e.Reset()
	_, err := e.Write(data)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	return buf.Bytes(), e
}

// inflate decodes a raw DEFLATE stream with an independent decoder.
func inflate(t *testing.T, compressed []byte) []byte {
	t.Helper()

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func TestEncoderRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 100_000)
	rng.Read(random)

	cycle := make([]byte, 256_000)
	for i := range cycle {
		cycle[i] = byte(i)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{'x'}},
		{"three bytes", []byte("abc")},
		{"four bytes", []byte("abcd")},
		{"hello", []byte("hello, world!")},
		{"repeated", bytes.Repeat([]byte{'A'}, 400_000)},
		{"max match run", bytes.Repeat([]byte{'z'}, 258+3)},
		{"random", random},
		{"byte cycle", cycle},
		{"window exact", bytes.Repeat([]byte("0123456789abcdef"), 2048)}, // 32768 bytes
		{"window plus one", append(bytes.Repeat([]byte("0123456789abcdef"), 2048), '!')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			compressed, e := compress(t, tt.data)
			assert.Equal(t, tt.data, inflate(t, compressed))
			assert.Equal(t, uint64(len(tt.data)), e.UncompressedN())
			assert.Equal(t, uint64(len(compressed)), e.CompressedN())
			assert.Equal(t, crc32.ChecksumIEEE(tt.data), e.CRC32())
		})
	}
}

func TestEncoderEmptyStream(t *testing.T) {
	t.Parallel()

	// Prelude (3 bits) + end-of-block (7 bits) + padding: exactly two
	// bytes, the first carrying BFINAL=1, BTYPE=01.
	compressed, e := compress(t, nil)
	assert.Equal(t, []byte{0x03, 0x00}, compressed)
	assert.Equal(t, uint32(0), e.CRC32())
}

func TestEncoderBlockHeader(t *testing.T) {
	t.Parallel()

	compressed, _ := compress(t, []byte("payload"))
	require.NotEmpty(t, compressed)
	assert.Equal(t, byte(3), compressed[0]&7, "final block with fixed Huffman codes")
}

func TestEncoderChunkingInvariance(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	data := make([]byte, 90_000)
	rng.Read(data)

	whole, _ := compress(t, data)

	var buf bytes.Buffer
	e := NewEncoder(&ioutil.StickyWriter{W: &buf})
	e.Reset()
	for chunk := range slices.Chunk(data, 777) {
		_, err := e.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, e.Close())

	assert.Equal(t, whole, buf.Bytes(), "output depends only on content, not chunking")
}

func TestEncoderReset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := NewEncoder(&ioutil.StickyWriter{W: &buf})

	first := bytes.Repeat([]byte("first stream "), 5000)
	e.Reset()
	_, err := e.Write(first)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	cut := buf.Len()
	assert.Equal(t, uint64(cut), e.CompressedN())

	second := []byte("second stream")
	e.Reset()
	_, err = e.Write(second)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	assert.Equal(t, first, inflate(t, buf.Bytes()[:cut]))
	assert.Equal(t, second, inflate(t, buf.Bytes()[cut:]))
	assert.Equal(t, crc32.ChecksumIEEE(second), e.CRC32())
	assert.Equal(t, uint64(len(second)), e.UncompressedN())
}

func TestEncoderCompressesRepetition(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{'A'}, 400_000)
	compressed, _ := compress(t, data)
	assert.Less(t, len(compressed), 10_000, "run of one byte should collapse via back-references")
}

func TestEncoderLongInput(t *testing.T) {
	t.Parallel()

	// Several window slides with content that repeats at long range.
	var data []byte
	for i := range 40 {
		data = append(data, []byte(fmt.Sprintf("segment %d: ", i%7))...)
		data = append(data, bytes.Repeat([]byte("lorem ipsum dolor sit amet "), 2000)...)
	}

	compressed, e := compress(t, data)
	assert.Equal(t, data, inflate(t, compressed))
	assert.Equal(t, crc32.ChecksumIEEE(data), e.CRC32())
	assert.Less(t, len(compressed), len(data)/2)
}
