package domain

import (
	"fmt"

	"github.com/basinwatch/incident-data-etl/internal/geo"
)

// Validate applies the domain integrity rules to a candidate record, in
// fixed order: geographic bounding box, then volume consistency, then water
// percentage. The first failing rule wins. Duplicate detection is not here;
// it needs the persisted set and belongs to the orchestrator and the store.
func Validate(rec IncidentRecord) error {
	if !geo.InBasin(rec.Lat, rec.Lon) {
		return fmt.Errorf("%w: lat=%.6f lon=%.6f", ErrOutOfBasin, rec.Lat, rec.Lon)
	}
	if rec.VolumeSpilledM3 != nil && rec.VolumeRecoveredM3 != nil &&
		*rec.VolumeRecoveredM3 > *rec.VolumeSpilledM3 {
		return fmt.Errorf("%w: recovered=%.3f spilled=%.3f",
			ErrVolumeInconsistent, *rec.VolumeRecoveredM3, *rec.VolumeSpilledM3)
	}
	if rec.WaterPercentage != nil && (*rec.WaterPercentage < 0 || *rec.WaterPercentage > 100) {
		return fmt.Errorf("%w: %.2f", ErrWaterPercentInvalid, *rec.WaterPercentage)
	}
	return nil
}
