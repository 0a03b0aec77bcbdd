package extract

import (
	"log/slog"
	"regexp"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/geo"
)

// PCR (Petroquímica Comodoro Rivadavia) uses a planilla close to the
// Pluspetrol one: marked type/magnitude table, volumes in narrative text,
// DMS coordinates. Its distinguishing quirk is the acute accent (´) as the
// minutes mark, e.g. "Lat. S= 34°57´51,5" S". Symbol normalization happens
// inside the shared DMS parser, so the patterns here only need to be
// permissive about which characters a coordinate may contain.
type PCR struct {
	logger *slog.Logger
}

func NewPCR(logger *slog.Logger) *PCR {
	return &PCR{logger: logger}
}

func (e *PCR) Operator() string { return "Petroquímica Comodoro Rivadavia S.A." }

var (
	// Header format: "Comunicado MDZ-21-2025- Batería 216"
	pcrIncidentRe   = regexp.MustCompile(`(?i)Comunicado\s+(MDZ-[\w-]+)`)
	pcrConcessionRe = regexp.MustCompile(`(?i)Concesión[:\s]+(.+)`)
	pcrZoneRe       = regexp.MustCompile(`(?i)Zona[:\s]+(.+)`)
	pcrDescRe       = regexp.MustCompile(`(?is)Descripción del accidente.*?\n(.+?)(?:Superficie Afectada|Necesidad)`)
	pcrDateRe       = regexp.MustCompile(`(?i)Fecha[:\s]+(\d{2}[-/]\d{2}[-/]\d{4})`)
	pcrTimeRe       = regexp.MustCompile(`(?i)Hora de Detección[:\s]+(\d{1,2}:\d{2})`)

	pcrLatRe = regexp.MustCompile(`(?i)Lat\.\s*S=\s*([\d°º´'".,]+)`)
	pcrLonRe = regexp.MustCompile(`(?i)Long\.\s*O=\s*([\d°º´'".,]+)`)

	// Volumes arrive in narrative sentences, not labeled cells:
	// "Volumen derramado neto de hidrocarburo: 1,1 m3 ... Con un 40 % de agua"
	pcrSpilledRe   = regexp.MustCompile(`(?i)Volumen derramado neto.*?[:\s]+([\d.,]+)\s*m3`)
	pcrRecoveredRe = regexp.MustCompile(`(?i)Volumen recuperado neto.*?[:\s]+([\d.,]+)\s*m3`)
	pcrWaterRe     = regexp.MustCompile(`(?i)(\d+)\s*%\s*de\s*agua`)
	pcrAreaRe      = regexp.MustCompile(`(?i)unos\s+([\d.,]+)\s*m2`)
)

var pcrSubtypes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Derrames de agua de producción", regexp.MustCompile(`(?i)Derrames de agua.*?[■✓X█]`)},
	{"Derrames de hidrocarburos", regexp.MustCompile(`(?i)Derrames de hidrocarburo.*?[■✓X█]`)},
	{"Incendio y/o explosiones", regexp.MustCompile(`(?i)Incendio.*?[■✓X█]`)},
	{"Escapes de gases", regexp.MustCompile(`(?i)Escapes de gas.*?[■✓X█]`)},
	{"Descontrol de pozos", regexp.MustCompile(`(?i)Descontrol.*?[■✓X█]`)},
	{"Material radioactivo", regexp.MustCompile(`(?i)material radioactivo.*?[■✓X█]`)},
}

// PCR's severity columns are BAJO | MEDIO | GRAVE; the filled square sits on
// the line below the marked column header.
var pcrMagnitudes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Bajo", regexp.MustCompile(`(?i)BAJO\s*\n[^\n]*[■█]`)},
	{"Medio", regexp.MustCompile(`(?i)MEDIO\s*\n[^\n]*[■█]`)},
	{"Grave", regexp.MustCompile(`(?i)GRAVE\s*\n[^\n]*[■█]`)},
}

func (e *PCR) Extract(text string) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord
	rec.Operator = e.Operator()

	num := FindField(text, pcrIncidentRe)
	if num == "" {
		return rec, missingField("incident id")
	}
	rec.IncidentID = "PCR-" + num

	rec.ConcessionArea = FindField(text, pcrConcessionRe)
	rec.OilField = FindField(text, pcrZoneRe)
	rec.Description = abbreviate(FindField(text, pcrDescRe))
	rec.IncidentTime = FindField(text, pcrTimeRe)
	rec.IncidentSubtype = markedRow(text, pcrSubtypes)

	if raw := FindField(text, pcrDateRe); raw != "" {
		date, err := NormalizeDate(raw)
		if err != nil {
			return rec, err
		}
		rec.IncidentDate = date
	}

	latRaw := FindField(text, pcrLatRe)
	lonRaw := FindField(text, pcrLonRe)
	if latRaw == "" || lonRaw == "" {
		return rec, missingField("coordinates")
	}
	latMag, err := ParseDMSMagnitude(latRaw)
	if err != nil {
		return rec, err
	}
	lonMag, err := ParseDMSMagnitude(lonRaw)
	if err != nil {
		return rec, err
	}
	rec.Lat = geo.ApplyBasinSign(latMag)
	rec.Lon = geo.ApplyBasinSign(lonMag)
	rec.SourceNotation = domain.NotationDMS

	if rec.VolumeSpilledM3, err = FindFloat(text, pcrSpilledRe); err != nil {
		return rec, err
	}
	if rec.VolumeRecoveredM3, err = FindFloat(text, pcrRecoveredRe); err != nil {
		return rec, err
	}
	if rec.WaterPercentage, err = FindFloat(text, pcrWaterRe); err != nil {
		return rec, err
	}
	if rec.AffectedAreaM2, err = FindFloat(text, pcrAreaRe); err != nil {
		return rec, err
	}

	rec.Magnitude = markedRow(text, pcrMagnitudes)
	if rec.Magnitude == "" {
		rec.Magnitude = domain.InferMagnitude(rec.VolumeSpilledM3, nil)
		e.logger.Info("magnitude inferred from volume",
			"incident_id", rec.IncidentID, "magnitude", rec.Magnitude)
	}

	return rec, nil
}
