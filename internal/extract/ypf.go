package extract

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/geo"
)

// YPF reports are the most structured format: a labeled field per line and
// three coordinate representations. The "Grados y decimales" block is
// preferred because it needs no conversion; magnitudes come unsigned, so the
// basin hemisphere rule applies.
type YPF struct {
	logger *slog.Logger
}

func NewYPF(logger *slog.Logger) *YPF {
	return &YPF{logger: logger}
}

func (e *YPF) Operator() string { return "YPF S.A." }

var (
	ypfIncidentRe   = regexp.MustCompile(`(?i)Comunicado Incidente\s+N[°º]\s*(\d+)`)
	ypfConcessionRe = regexp.MustCompile(`(?i)Área concesionada:\s*(.+)`)
	ypfOilFieldRe   = regexp.MustCompile(`(?i)Yacimiento:\s*(.+)`)
	ypfFacilityRe   = regexp.MustCompile(`(?i)Tipo de instalación:\s*(.+)`)
	ypfSubtypeRe    = regexp.MustCompile(`(?i)Subtipo de incidente:\s*(.+)`)
	ypfMagnitudeRe  = regexp.MustCompile(`(?i)Magnitud del Incidente:\s*(.+)`)
	ypfDescRe       = regexp.MustCompile(`(?i)Descripción:\s*(.+)`)
	ypfDateRe       = regexp.MustCompile(`(?i)Fecha de ocurrencia:\s*(\d{2}/\d{2}/\d{4})`)
	ypfTimeRe       = regexp.MustCompile(`(?i)Hora de ocurrencia:\s*(\d{2}:\d{2})`)

	// Label and value sit on separate lines in the extracted text:
	// "Grados y decimales:\nLatitud (S): 37.348933° Longitud (W): 69.053400°"
	ypfLatRe = regexp.MustCompile(`(?i)Grados y decimales:[\s\S]*?Latitud\s*\(S\):\s*([\d.,]+)°`)
	ypfLonRe = regexp.MustCompile(`(?i)Latitud\s*\(S\):\s*[\d.,]+°\s*Longitud\s*\(W\):\s*([\d.,]+)°`)

	ypfSpilledRe   = regexp.MustCompile(`(?i)Volumen m3 derramado:\s*([\d.,]+)`)
	ypfRecoveredRe = regexp.MustCompile(`(?i)Volumen m3 recuperado:\s*([\d.,]+)`)
	ypfWaterRe     = regexp.MustCompile(`(?i)%\s*Agua contenido:\s*([\d.,]+)`)
	ypfAreaRe      = regexp.MustCompile(`(?i)Área m2:\s*([\d.,]+)`)
	ypfPPMRe       = regexp.MustCompile(`(?i)Concentración de hidrocarburo \(ppm\):\s*([\d.,]+)`)
	ypfResourcesRe = regexp.MustCompile(`(?i)Recursos afectados:\s*(.+)`)
)

func (e *YPF) Extract(text string) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord
	rec.Operator = e.Operator()

	num := FindField(text, ypfIncidentRe)
	if num == "" {
		return rec, missingField("incident id")
	}
	rec.IncidentID = "YPF-" + num

	rec.ConcessionArea = FindField(text, ypfConcessionRe)
	rec.OilField = FindField(text, ypfOilFieldRe)
	rec.FacilityType = FindField(text, ypfFacilityRe)
	rec.IncidentSubtype = FindField(text, ypfSubtypeRe)
	rec.Description = abbreviate(FindField(text, ypfDescRe))
	rec.IncidentTime = FindField(text, ypfTimeRe)

	if raw := FindField(text, ypfDateRe); raw != "" {
		date, err := NormalizeDate(raw)
		if err != nil {
			return rec, err
		}
		rec.IncidentDate = date
	}

	lat, err := FindFloat(text, ypfLatRe)
	if err != nil {
		return rec, err
	}
	lon, err := FindFloat(text, ypfLonRe)
	if err != nil {
		return rec, err
	}
	if lat == nil || lon == nil {
		return rec, missingField("coordinates")
	}
	rec.Lat = geo.ApplyBasinSign(*lat)
	rec.Lon = geo.ApplyBasinSign(*lon)
	rec.SourceNotation = domain.NotationDecimalDegrees

	if rec.VolumeSpilledM3, err = FindFloat(text, ypfSpilledRe); err != nil {
		return rec, err
	}
	if rec.VolumeRecoveredM3, err = FindFloat(text, ypfRecoveredRe); err != nil {
		return rec, err
	}
	if rec.WaterPercentage, err = FindFloat(text, ypfWaterRe); err != nil {
		return rec, err
	}
	if rec.AffectedAreaM2, err = FindFloat(text, ypfAreaRe); err != nil {
		return rec, err
	}
	rec.AffectedResources = FindField(text, ypfResourcesRe)

	rec.Magnitude = FindField(text, ypfMagnitudeRe)
	if rec.Magnitude == "" {
		ppm, _ := FindFloat(text, ypfPPMRe)
		rec.Magnitude = domain.InferMagnitude(rec.VolumeSpilledM3, ppm)
	}

	return rec, nil
}

func missingField(field string) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingField, field)
}
