package zipwrite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDosDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		t        time.Time
		wantDate uint16
		wantTime uint16
	}{
		{
			"known stamp",
			time.Date(2024, time.June, 15, 13, 45, 32, 0, time.UTC),
			0x58CF, // (2024-1980)<<9 | 6<<5 | 15
			0x6DB0, // 13<<11 | 45<<5 | 32>>1
		},
		{
			"epoch floor",
			time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
			1<<5 | 1,
			0,
		},
		{
			"odd second rounds down",
			time.Date(2000, time.December, 31, 23, 59, 59, 0, time.UTC),
			(2000-1980)<<9 | 12<<5 | 31,
			23<<11 | 59<<5 | 29,
		},
		{
			"pre-1980 clamps to floor",
			time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC),
			7<<5 | 20,
			20<<11 | 17<<5,
		},
		{
			"post-2107 clamps to ceiling",
			time.Date(2200, time.March, 2, 1, 2, 4, 0, time.UTC),
			127<<9 | 3<<5 | 2,
			1<<11 | 2<<5 | 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			date, tod := dosDateTime(tt.t)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantTime, tod)
		})
	}
}
