package ioutil

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken pipe")

type flakyWriter struct {
	calls int
	fail  bool
	short bool
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.fail {
		return 0, errBroken
	}
	if w.short {
		return len(p) / 2, nil
	}
	return len(p), nil
}

func TestStickyWriterCounts(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}
	sw := &StickyWriter{W: w}

	n, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = sw.Write([]byte("world!"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, uint64(11), sw.N)
}

func TestStickyWriterLatchesError(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{fail: true}
	sw := &StickyWriter{W: w}

	_, err := sw.Write([]byte("data"))
	require.ErrorIs(t, err, errBroken)

	// Subsequent writes short-circuit without reaching the sink.
	_, err = sw.Write([]byte("more"))
	require.ErrorIs(t, err, errBroken)
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, uint64(0), sw.N)
}

func TestStickyWriterShortWrite(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{short: true}
	sw := &StickyWriter{W: w}

	n, err := sw.Write([]byte("12345678"))
	require.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint64(4), sw.N)
	require.ErrorIs(t, sw.Err, io.ErrShortWrite)
}

func TestStickyWriterEmptyWrite(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}
	sw := &StickyWriter{W: w}

	n, err := sw.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, w.calls)
}
