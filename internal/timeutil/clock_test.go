package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Minutes
		wantErr bool
	}{
		{name: "zero", input: "00:00", want: 0},
		{name: "single digit hour", input: "9:05", want: 545},
		{name: "double digit", input: "13:30", want: 810},
		{name: "surrounding whitespace", input: " 08:15 ", want: 495},
		{name: "past midnight", input: "25:00", want: 1500},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing colon", input: "0930", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "date not a clock", input: "2025-07-01", wantErr: true},
		{name: "trailing junk", input: "09:00 JST", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockFormatting(t *testing.T) {
	assert.Equal(t, "00:00", Minutes(0).Clock())
	assert.Equal(t, "09:05", Minutes(545).Clock())
	assert.Equal(t, "23:55", Minutes(1435).Clock())
	// No wrap at midnight: hours keep counting.
	assert.Equal(t, "24:10", Minutes(1450).Clock())
}

func TestParseClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "12:30", "23:55"} {
		m, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.Clock())
	}
}

func TestLooksLikeClock(t *testing.T) {
	assert.True(t, LooksLikeClock("9:00"))
	assert.True(t, LooksLikeClock("23:55"))
	assert.False(t, LooksLikeClock("9:99"))
	assert.False(t, LooksLikeClock("2025-07-01"))
	assert.False(t, LooksLikeClock("田中"))
	assert.False(t, LooksLikeClock(""))
}

func TestSnapDown(t *testing.T) {
	assert.Equal(t, Minutes(540), Minutes(543).SnapDown(5))
	assert.Equal(t, Minutes(540), Minutes(540).SnapDown(5))
	assert.Equal(t, Minutes(543), Minutes(543).SnapDown(0))
}

func TestSlots(t *testing.T) {
	t.Run("basic sequence", func(t *testing.T) {
		got := Slots(MustClock("09:00"), MustClock("09:20"), 5)
		require.Len(t, got, 4)
		assert.Equal(t, "09:00", got[0].Clock())
		assert.Equal(t, "09:15", got[3].Clock())
	})

	t.Run("half open upper bound", func(t *testing.T) {
		got := Slots(MustClock("09:00"), MustClock("09:05"), 5)
		require.Len(t, got, 1)
		assert.Equal(t, "09:00", got[0].Clock())
	})

	t.Run("empty when window inverted", func(t *testing.T) {
		assert.Empty(t, Slots(MustClock("10:00"), MustClock("09:00"), 5))
		assert.Empty(t, Slots(MustClock("09:00"), MustClock("09:00"), 5))
	})
}
