package extract

import (
	"log/slog"
	"math"
	"regexp"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/geo"
)

// Pluspetrol communiqués are free-form planillas rather than rigid tables,
// so patterns are permissive. The dialect reports coordinates twice: a
// Gauss-Krüger Faja 2 pair in meters and a signed WGS84 decimal pair. The
// decimal pair is authoritative; the projected pair is stored for auditing
// and used as a fallback, with a cross-check between the two when both are
// present.
type Pluspetrol struct {
	logger *slog.Logger
}

func NewPluspetrol(logger *slog.Logger) *Pluspetrol {
	return &Pluspetrol{logger: logger}
}

func (e *Pluspetrol) Operator() string { return "Pluspetrol S.A." }

// crossCheckToleranceDeg bounds the accepted disagreement between the stated
// decimal pair and the one derived from the projected pair (~1 km).
const crossCheckToleranceDeg = 0.01

var (
	ppIncidentRe   = regexp.MustCompile(`(?i)COMUNICADO\s+N[°º]?[:\s]+(\S+)`)
	ppConcessionRe = regexp.MustCompile(`(?i)CONCESI[ÓO]N[:\s]+(\S+)`)
	ppOilFieldRe   = regexp.MustCompile(`(?i)YACIMIENTO[:\s]+(\S+)`)
	ppDescRe       = regexp.MustCompile(`(?is)DESCRIPCI[ÓO]N[:\s]*\n(.+?)(?:\n\n|\z)`)
	ppDateRe       = regexp.MustCompile(`(?i)FECHA[:\s]+(\d{2}/\d{2}/\d{4})`)
	ppTimeRe       = regexp.MustCompile(`(?i)HORA[:\s]+(\d{2}:\d{2})`)

	// "X: 2552676,15 Y: 5858413,69 (Gauss-Krüger Faja 2)"
	ppGKEastingRe  = regexp.MustCompile(`(?i)X[:\s]+([\d.,]+)\s+Y[:\s]`)
	ppGKNorthingRe = regexp.MustCompile(`(?i)Y[:\s]+([\d.,]+)\s+\(Gauss`)

	// "Long.: -68.4049142 Lat.: -37.4246588" — already signed.
	ppLonRe = regexp.MustCompile(`(?i)Long\.\s*:\s*(-?[\d.,]+)`)
	ppLatRe = regexp.MustCompile(`(?i)Lat\.\s*:\s*(-?[\d.,]+)`)

	ppSpilledRe   = regexp.MustCompile(`(?i)Vol\.?\s*derramado[:\s]+([\d.,]+)\s*m3`)
	ppRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+recuperado[:\s]+([\d.,]+)\s*m3`)
	ppWaterRe     = regexp.MustCompile(`(?i)\((\d+)\s*%\s*agua`)
	ppAreaRe      = regexp.MustCompile(`(?i)Sup\.?\s*Afectada[:\s]+([\d.,]+)\s*m2`)
)

// Contingency table rows are marked with ■/✓/X; the first marked row gives
// the incident subtype, the marked column the magnitude.
var ppSubtypes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Derrame de agua de producción", regexp.MustCompile(`(?i)Derrame de agua de producción.*?[■✓X]`)},
	{"Derrame de hidrocarburos", regexp.MustCompile(`(?i)Derrame de hidrocarburos.*?[■✓X]`)},
	{"Incendio / explosión", regexp.MustCompile(`(?i)Incendio.*?[■✓X]`)},
	{"Escape de gases", regexp.MustCompile(`(?i)Escape de gases.*?[■✓X]`)},
	{"Descontrol de pozos", regexp.MustCompile(`(?i)Descontrol.*?[■✓X]`)},
}

var ppMagnitudes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Baja", regexp.MustCompile(`(?s)BAJA\s*\n.*?[■✓]`)},
	{"Media", regexp.MustCompile(`(?s)MEDIA\s*\n.*?[■✓]`)},
	{"Alta", regexp.MustCompile(`(?s)ALTA\s*\n.*?[■✓]`)},
}

var ppMagnitudeFallbackRe = regexp.MustCompile(`(?i)Magnitud[:\s]+(\w+)`)

func (e *Pluspetrol) Extract(text string) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord
	rec.Operator = e.Operator()

	num := FindField(text, ppIncidentRe)
	if num == "" {
		return rec, missingField("incident id")
	}
	rec.IncidentID = "PP-" + num

	rec.ConcessionArea = FindField(text, ppConcessionRe)
	rec.OilField = FindField(text, ppOilFieldRe)
	rec.Description = abbreviate(FindField(text, ppDescRe))
	rec.IncidentTime = FindField(text, ppTimeRe)
	rec.IncidentSubtype = markedRow(text, ppSubtypes)
	rec.Magnitude = markedRow(text, ppMagnitudes)
	if rec.Magnitude == "" {
		rec.Magnitude = FindField(text, ppMagnitudeFallbackRe)
	}

	if raw := FindField(text, ppDateRe); raw != "" {
		date, err := NormalizeDate(raw)
		if err != nil {
			return rec, err
		}
		rec.IncidentDate = date
	}

	easting, err := FindFloat(text, ppGKEastingRe)
	if err != nil {
		return rec, err
	}
	northing, err := FindFloat(text, ppGKNorthingRe)
	if err != nil {
		return rec, err
	}
	rec.ProjectedEasting = easting
	rec.ProjectedNorthing = northing

	lat, err := FindFloat(text, ppLatRe)
	if err != nil {
		return rec, err
	}
	lon, err := FindFloat(text, ppLonRe)
	if err != nil {
		return rec, err
	}

	switch {
	case lat != nil && lon != nil:
		rec.Lat = *lat
		rec.Lon = *lon
		rec.SourceNotation = domain.NotationDecimalDegrees
		e.crossCheck(&rec)
	case easting != nil && northing != nil:
		gkLat, gkLon, convErr := geo.ProjectedToGeographic(*easting, *northing)
		if convErr != nil {
			return rec, convErr
		}
		rec.Lat = gkLat
		rec.Lon = gkLon
		rec.SourceNotation = domain.NotationGaussKruger
	default:
		return rec, missingField("coordinates")
	}

	if rec.VolumeSpilledM3, err = FindFloat(text, ppSpilledRe); err != nil {
		return rec, err
	}
	if rec.VolumeRecoveredM3, err = FindFloat(text, ppRecoveredRe); err != nil {
		return rec, err
	}
	if rec.WaterPercentage, err = FindFloat(text, ppWaterRe); err != nil {
		return rec, err
	}
	if rec.AffectedAreaM2, err = FindFloat(text, ppAreaRe); err != nil {
		return rec, err
	}

	return rec, nil
}

// crossCheck compares the stated decimal pair against the projected pair and
// flags disagreements beyond the tolerance; the decimal pair stays
// authoritative either way.
func (e *Pluspetrol) crossCheck(rec *domain.IncidentRecord) {
	if rec.ProjectedEasting == nil || rec.ProjectedNorthing == nil {
		return
	}
	gkLat, gkLon, err := geo.ProjectedToGeographic(*rec.ProjectedEasting, *rec.ProjectedNorthing)
	if err != nil {
		e.logger.Warn("projected pair not convertible",
			"incident_id", rec.IncidentID, "error", err)
		return
	}
	if math.Abs(gkLat-rec.Lat) > crossCheckToleranceDeg ||
		math.Abs(gkLon-rec.Lon) > crossCheckToleranceDeg {
		e.logger.Warn("projected pair disagrees with decimal coordinates",
			"incident_id", rec.IncidentID,
			"lat", rec.Lat, "lon", rec.Lon,
			"gk_lat", gkLat, "gk_lon", gkLon)
	}
}

func markedRow(text string, rows []struct {
	name string
	re   *regexp.Regexp
}) string {
	for _, row := range rows {
		if row.re.MatchString(text) {
			return row.name
		}
	}
	return ""
}
