package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func validRecord() IncidentRecord {
	return IncidentRecord{
		IncidentID:        "YPF-0000123456",
		Operator:          "YPF S.A.",
		IncidentDate:      "10-10-2025",
		Lat:               -37.34,
		Lon:               -69.05,
		SourceNotation:    NotationDecimalDegrees,
		VolumeSpilledM3:   f(8.5),
		VolumeRecoveredM3: f(1.0),
		WaterPercentage:   f(99.8),
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate(validRecord()))
}

func TestValidate_BoundingBox(t *testing.T) {
	rec := validRecord()
	rec.Lat = -3.742 // dropped digit typo
	err := Validate(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfBasin)
}

func TestValidate_BoundingBox_Random(t *testing.T) {
	// Pairs drawn outside the box must always fail the gate.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		rec := validRecord()
		if rng.Intn(2) == 0 {
			rec.Lat = -38.0001 - rng.Float64()*50
		} else {
			rec.Lon = -66.9999 + rng.Float64()*50
		}
		assert.ErrorIs(t, Validate(rec), ErrOutOfBasin)
	}
}

func TestValidate_VolumeConsistency(t *testing.T) {
	rec := validRecord()
	rec.VolumeSpilledM3 = f(1.0)
	rec.VolumeRecoveredM3 = f(8.5)
	err := Validate(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVolumeInconsistent)
}

func TestValidate_VolumeEqualIsFine(t *testing.T) {
	rec := validRecord()
	rec.VolumeSpilledM3 = f(2.0)
	rec.VolumeRecoveredM3 = f(2.0)
	require.NoError(t, Validate(rec))
}

func TestValidate_MissingVolumesSkipRule(t *testing.T) {
	rec := validRecord()
	rec.VolumeSpilledM3 = nil
	rec.VolumeRecoveredM3 = f(3.0)
	require.NoError(t, Validate(rec))
}

func TestValidate_WaterPercentage(t *testing.T) {
	rec := validRecord()
	rec.WaterPercentage = f(130.0)
	assert.ErrorIs(t, Validate(rec), ErrWaterPercentInvalid)

	rec.WaterPercentage = f(-1.0)
	assert.ErrorIs(t, Validate(rec), ErrWaterPercentInvalid)
}

func TestInferMagnitude(t *testing.T) {
	tests := []struct {
		name string
		vol  *float64
		ppm  *float64
		want string
	}{
		{"unknown volume", nil, nil, MagnitudeUndetermined},
		{"small spill no ppm", f(4.0), nil, MagnitudeMinor},
		{"large spill no ppm", f(8.5), nil, MagnitudeMajor},
		{"high ppm over threshold", f(6.0), f(80), MagnitudeMajor},
		{"low ppm raises threshold", f(6.0), f(20), MagnitudeMinor},
		{"low ppm still major", f(12.0), f(20), MagnitudeMajor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMagnitude(tt.vol, tt.ppm))
		})
	}
}
