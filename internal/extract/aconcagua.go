package extract

import (
	"log/slog"
	"regexp"

	"github.com/basinwatch/incident-data-etl/internal/domain"
)

// Aconcagua reports are the cleanest dialect: signed decimal-degree
// coordinates and well-labeled two-column fields. The report body carries no
// communication number, so the facility subtype (e.g. "CH-28") serves as the
// incident identifier, and magnitude is never stated and must be inferred.
type Aconcagua struct {
	logger *slog.Logger
}

func NewAconcagua(logger *slog.Logger) *Aconcagua {
	return &Aconcagua{logger: logger}
}

func (e *Aconcagua) Operator() string { return "Aconcagua Energía S.A." }

var (
	acoFacilitySubRe = regexp.MustCompile(`(?i)Subtipo de instalación involucrada\s+(\S+)`)
	acoConcessionRe  = regexp.MustCompile(`(?i)Nombre del área en recepción o\s+(.+)`)
	acoOilFieldRe    = regexp.MustCompile(`(?i)Nombre del yacimiento\s+(.+)`)
	acoFacilityRe    = regexp.MustCompile(`(?i)Tipo de instalación involucrada\s+(.+)`)
	acoSubtypeRe     = regexp.MustCompile(`(?i)Tipo de Incidente\s+(.+)`)
	acoDescRe        = regexp.MustCompile(`(?is)Detalle del incidente\s+(.+?)Tipo de instalación`)
	acoDateRe        = regexp.MustCompile(`(?i)Fecha de Ocurrencia\s+(\d{2}/\d{2}/\d{4})`)
	acoTimeRe        = regexp.MustCompile(`(?i)Hora de Ocurrencia\s+(\d{2}:\d{2})`)

	// Coordinates arrive signed: "Latitud Decimal  -33.3465"
	acoLatRe = regexp.MustCompile(`(?i)Latitud Decimal\s+(-?[\d.,]+)`)
	acoLonRe = regexp.MustCompile(`(?i)Longitud Decimal\s+(-?[\d.,]+)`)

	acoSpilledRe   = regexp.MustCompile(`(?i)Volumen\s+de\s+líquido\s+derramado\s+([\d.,]+)`)
	acoRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+de\s+fluido\s+recuperado\s+([\d.,]+)`)
	acoWaterRe     = regexp.MustCompile(`(?i)%\s+de\s+Agua\s+([\d.,]+)`)
	acoAreaRe      = regexp.MustCompile(`(?i)Superficie aprox\.\s+afectada\s+([\d.,]+)`)
	acoPPMRe       = regexp.MustCompile(`(?i)PPM\s+([\d.,]+)`)
)

func (e *Aconcagua) Extract(text string) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord
	rec.Operator = e.Operator()

	facility := FindField(text, acoFacilitySubRe)
	if facility == "" {
		return rec, missingField("incident id")
	}
	rec.IncidentID = "ACO-" + facility

	rec.ConcessionArea = FindField(text, acoConcessionRe)
	rec.OilField = FindField(text, acoOilFieldRe)
	rec.FacilityType = FindField(text, acoFacilityRe)
	rec.IncidentSubtype = FindField(text, acoSubtypeRe)
	rec.Description = abbreviate(FindField(text, acoDescRe))
	rec.IncidentTime = FindField(text, acoTimeRe)

	if raw := FindField(text, acoDateRe); raw != "" {
		date, err := NormalizeDate(raw)
		if err != nil {
			return rec, err
		}
		rec.IncidentDate = date
	}

	lat, err := FindFloat(text, acoLatRe)
	if err != nil {
		return rec, err
	}
	lon, err := FindFloat(text, acoLonRe)
	if err != nil {
		return rec, err
	}
	if lat == nil || lon == nil {
		return rec, missingField("coordinates")
	}
	// Sign already explicit in the document; pass through unchanged.
	rec.Lat = *lat
	rec.Lon = *lon
	rec.SourceNotation = domain.NotationDecimalDegrees

	if rec.VolumeSpilledM3, err = FindFloat(text, acoSpilledRe); err != nil {
		return rec, err
	}
	if rec.VolumeRecoveredM3, err = FindFloat(text, acoRecoveredRe); err != nil {
		return rec, err
	}
	if rec.WaterPercentage, err = FindFloat(text, acoWaterRe); err != nil {
		return rec, err
	}
	if rec.AffectedAreaM2, err = FindFloat(text, acoAreaRe); err != nil {
		return rec, err
	}

	ppm, err := FindFloat(text, acoPPMRe)
	if err != nil {
		return rec, err
	}
	rec.Magnitude = domain.InferMagnitude(rec.VolumeSpilledM3, ppm)
	e.logger.Debug("magnitude inferred from volume",
		"incident_id", rec.IncidentID, "magnitude", rec.Magnitude)

	return rec, nil
}
