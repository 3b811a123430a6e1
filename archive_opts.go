package zipwrite

import "time"

type config struct {
	modTime time.Time
}

// Option configures an Archive.
type Option func(*config)

// WithModTime sets the timestamp stamped on every member, replacing
// the wall clock captured at creation. Useful for reproducible
// archives. ZIP stores local time at two-second resolution.
func WithModTime(t time.Time) Option {
	return func(c *config) {
		c.modTime = t
	}
}
