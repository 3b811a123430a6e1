package zipwrite

import "time"

// dosDateTime converts t to the MS-DOS date and time fields used in
// ZIP headers. Seconds are stored at two-second resolution and the
// year is clamped to the representable range [1980, 2107].
func dosDateTime(t time.Time) (date, tod uint16) {
	year := t.Year()
	switch {
	case year < 1980:
		year = 1980
	case year > 1980+127:
		year = 1980 + 127
	}
	date = uint16(t.Day()) | uint16(t.Month())<<5 | uint16(year-1980)<<9
	tod = uint16(t.Second())>>1 | uint16(t.Minute())<<5 | uint16(t.Hour())<<11
	return date, tod
}
