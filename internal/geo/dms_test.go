package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMS(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"compact with comma decimal", `33°30'57,62"`, 33.516006},
		{"compact with period decimal", `33°30'57.62"`, 33.516006},
		{"acute accent minutes mark", `34°57´51,5"`, 34.964306},
		{"double apostrophe seconds", `33° 03' 54''`, 33.065},
		{"prime marks", `37°20′56.2″`, 37.348944},
		{"degrees and decimal minutes", `37°20.936'`, 37.348933},
		{"slash separated", `37 ° / 20 ' / 56.2`, 37.348944},
		{"decimal degrees period", "37.348933", 37.348933},
		{"decimal degrees comma", "37,348933", 37.348933},
		{"decimal degrees with sign", "-37.348933", 37.348933},
		{"trailing hemisphere letter", `34°57´51,5" S`, 34.964306},
		{"surrounding whitespace", "  33°30'57,62\"  ", 33.516006},
		{"degree symbol on decimal", "69.053400°", 69.0534},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDMS(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestParseDMS_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "no_es_coordenada", "lat: unknown", "°'\""} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDMS(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedAngle)
		})
	}
}

func TestDMSToDecimal(t *testing.T) {
	assert.InDelta(t, 37.348944, DMSToDecimal(37, 20, 56.2), 1e-6)
	assert.InDelta(t, 37.348933, DMSToDecimal(37, 20.936, 0), 1e-6)
	assert.InDelta(t, 33.516006, DMSToDecimal(33, 30, 57.62), 1e-6)
}

func TestApplyBasinSign(t *testing.T) {
	assert.InDelta(t, -33.5160, ApplyBasinSign(33.5160), 1e-9)
	assert.InDelta(t, -33.5160, ApplyBasinSign(-33.5160), 1e-9)
	assert.InDelta(t, 0.0, ApplyBasinSign(0), 1e-9)
}

func TestInBasin(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"pluspetrol JCP", -37.4246, -68.4049, true},
		{"aconcagua CH-28", -33.3465, -68.9873, true},
		{"corner", -38.0, -70.0, true},
		{"latitude too far south", -40.0, -68.0, false},
		{"latitude dropped digit", -3.742, -68.40, false},
		{"longitude dropped digit", -37.42, -6.840, false},
		{"northern hemisphere", 37.42, -68.40, false},
		{"east of basin", -37.42, -66.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBasin(tt.lat, tt.lon))
		})
	}
}

func TestInBasinRejectsRandomOutOfRangePairs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	checked := 0
	for checked < 500 {
		lat := -90 + rng.Float64()*180
		lon := -180 + rng.Float64()*360
		inside := lat >= LatMin && lat <= LatMax && lon >= LonMin && lon <= LonMax
		if inside {
			continue
		}
		checked++
		assert.Falsef(t, InBasin(lat, lon), "lat=%f lon=%f accepted", lat, lon)
	}
}
