package zipwrite

import "errors"

var (
	// ErrNilWriter is returned by New when no output writer is supplied.
	ErrNilWriter = errors.New("zipwrite: nil writer")

	// ErrEmptyName is returned by Begin when the member name is empty.
	ErrEmptyName = errors.New("zipwrite: empty member name")

	// ErrNoEntry is returned by Write when no member is active.
	ErrNoEntry = errors.New("zipwrite: no active member")

	// ErrFinished is returned when an operation is attempted on an
	// archive that has already been finished or closed.
	ErrFinished = errors.New("zipwrite: archive already finished")
)
