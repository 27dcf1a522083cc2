package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockToMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ClockToMinutes(tc.clock)
		require.NoError(t, err, tc.clock)
		assert.Equal(t, tc.want, got, tc.clock)
	}

	for _, bad := range []string{"", "24:00", "12:60", "noon", "-1:30"} {
		_, err := ClockToMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestMinutesToClockRoundtrip(t *testing.T) {
	assert.Equal(t, "08:00", MinutesToClock(480))
	assert.Equal(t, "21:45", MinutesToClock(1305))

	end, err := EndClock("09:30", 90)
	require.NoError(t, err)
	assert.Equal(t, "11:00", end)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 20.0, RoundMoney(19.999999))
	assert.Equal(t, 7.5, RoundMoney(7.5000001))
	assert.Equal(t, 0.01, RoundMoney(0.005))
}
