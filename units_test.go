package quotarate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSeconds_TableInvariants(t *testing.T) {
	for unit, seconds := range unitSeconds {
		assert.Positivef(t, seconds, "unit %q must map to a positive length", unit)
	}
}

func TestParseDurationSeconds_EveryUnit(t *testing.T) {
	// Every spelling must resolve to its own table value, both alone
	// (implicit quantity 1) and with an explicit quantity.
	for unit, unitSecs := range unitSeconds {
		t.Run(unit, func(t *testing.T) {
			secs, err := parseDurationSeconds(unit)
			require.NoError(t, err)
			assert.Equal(t, float64(unitSecs), secs)

			secs, err = parseDurationSeconds(fmt.Sprintf("3 %s", unit))
			require.NoError(t, err)
			assert.Equal(t, 3*float64(unitSecs), secs)
		})
	}
}

func TestParseDurationSeconds_LongestUnitWins(t *testing.T) {
	// Short spellings that are prefixes of longer ones ("m" in "month",
	// "min" in "mins", ...) must never pre-empt the longer match.
	for unit, unitSecs := range unitSeconds {
		hasShorterPrefix := false
		for other := range unitSeconds {
			if other != unit && strings.HasPrefix(unit, other) {
				hasShorterPrefix = true
				break
			}
		}
		if !hasShorterPrefix {
			continue
		}

		t.Run(unit, func(t *testing.T) {
			secs, err := parseDurationSeconds("1 " + unit)
			require.NoError(t, err)
			assert.Equalf(t, float64(unitSecs), secs,
				"%q must match as a whole word, not via a shorter spelling", unit)
		})
	}
}

func TestParseDurationSeconds_MonthNotMinute(t *testing.T) {
	secs, err := parseDurationSeconds("1 month")
	require.NoError(t, err)
	assert.Equal(t, 2592000.0, secs, `"month" must not resolve through "m" or "mo"`)
}

func TestParseDurationSeconds_Fractions(t *testing.T) {
	secs, err := parseDurationSeconds("half a week")
	require.NoError(t, err)
	assert.Equal(t, 302400.0, secs)

	secs, err = parseDurationSeconds("0.5 weeks")
	require.NoError(t, err)
	assert.Equal(t, 302400.0, secs)

	secs, err = parseDurationSeconds("quarter hour")
	require.NoError(t, err)
	assert.Equal(t, 900.0, secs)

	secs, err = parseDurationSeconds("¼ day")
	require.NoError(t, err)
	assert.Equal(t, 21600.0, secs)
}

func TestParseDurationSeconds_Unparseable(t *testing.T) {
	for _, phrase := range []string{"fortnight", "eternity", ""} {
		t.Run(phrase, func(t *testing.T) {
			_, err := parseDurationSeconds(phrase)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDurationNotParseable)
		})
	}
}

func TestNormalizePeriod(t *testing.T) {
	testCases := []struct {
		name   string
		phrase string
		want   string
	}{
		{
			name:   "fraction word then article",
			phrase: "half a week",
			want:   "0.5 week",
		},
		{
			name:   "article alone",
			phrase: "a day",
			want:   "day",
		},
		{
			name:   "fraction glyph",
			phrase: "½ week",
			want:   "0.5 week",
		},
		{
			name:   "fraction inside a word is untouched",
			phrase: "halfday",
			want:   "halfday",
		},
		{
			name:   "plain phrase unchanged",
			phrase: "3 hours",
			want:   "3 hours",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizePeriod(tc.phrase))
		})
	}
}
