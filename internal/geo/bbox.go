package geo

// Basin bounding box in WGS84 decimal degrees. Any coordinate outside it is
// treated as erroneous input, not a new area of operations.
const (
	LatMin = -38.0
	LatMax = -32.0
	LonMin = -70.0
	LonMax = -67.0
)

// InBasin reports whether the pair falls inside the basin bounding box.
// This is the final geographic admission gate before persistence.
func InBasin(lat, lon float64) bool {
	return lat >= LatMin && lat <= LatMax && lon >= LonMin && lon <= LonMax
}
