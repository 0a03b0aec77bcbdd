package geo

import (
	"fmt"
	"math"
)

// Gauss-Krüger Faja 2 parameters (Campo Inchauspe / Argentina zone 2).
// The single operator that reports projected coordinates always uses this
// zone, so the parameters are fixed constants rather than runtime input.
const (
	gkSemiMajor       = 6378388.0   // International 1924 ellipsoid
	gkFlattening      = 1.0 / 297.0 //
	gkCentralMeridian = -69.0       // degrees
	gkFalseEasting    = 2500000.0   // meters (faja number × 1e6 + 500 km)
	gkFalseNorthing   = 0.0         // northing measured from the south pole
	gkScaleFactor     = 1.0
)

// Plausible projected ranges for the basin; values outside are typos, not
// coordinates in a neighboring faja.
const (
	gkEastingMin  = 2000000.0
	gkEastingMax  = 3000000.0
	gkNorthingMin = 5000000.0
	gkNorthingMax = 7000000.0
)

// ProjectedToGeographic converts a Gauss-Krüger Faja 2 easting/northing pair
// (meters) into decimal-degree latitude/longitude using the closed-form
// inverse transverse-Mercator series. Accuracy is well within the ±500 m
// tolerance accepted for this conversion; the datum shift between Campo
// Inchauspe and WGS84 is inside that envelope for the basin.
func ProjectedToGeographic(easting, northing float64) (lat, lon float64, err error) {
	if easting < gkEastingMin || easting > gkEastingMax {
		return 0, 0, fmt.Errorf("%w: easting %.1f outside faja 2", ErrMalformedAngle, easting)
	}
	if northing < gkNorthingMin || northing > gkNorthingMax {
		return 0, 0, fmt.Errorf("%w: northing %.1f outside basin range", ErrMalformedAngle, northing)
	}

	a := gkSemiMajor
	f := gkFlattening
	e2 := 2*f - f*f
	ep2 := e2 / (1 - e2)

	// Meridional arc from the equator to the latitude of origin (-90°).
	m0 := meridionalArc(a, e2, -math.Pi/2)
	m := m0 + (northing-gkFalseNorthing)/gkScaleFactor

	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	// Footpoint latitude.
	phi1 := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sin1 := math.Sin(phi1)
	cos1 := math.Cos(phi1)
	tan1 := math.Tan(phi1)

	c1 := ep2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := a / math.Sqrt(1-e2*sin1*sin1)
	r1 := a * (1 - e2) / math.Pow(1-e2*sin1*sin1, 1.5)
	d := (easting - gkFalseEasting) / (n1 * gkScaleFactor)

	phi := phi1 - (n1*tan1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)

	lam := gkCentralMeridian*math.Pi/180 + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cos1

	return math.Round(phi/math.Pi*180*1e7) / 1e7, math.Round(lam/math.Pi*180*1e7) / 1e7, nil
}

func meridionalArc(a, e2, phi float64) float64 {
	e4 := e2 * e2
	e6 := e4 * e2
	return a * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
