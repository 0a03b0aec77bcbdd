package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/geo"
)

// PetSud reports are "Informe Preliminar Mendoza" tables with compact DMS
// coordinates. Text extraction from their PDFs is the least stable of the
// five dialects: a coordinate value may land on the same line as its label,
// on the next line, or split across two lines ("33°" then "34'39,63""), and
// the minutes mark varies between ', ´ and ''. Coordinate capture therefore
// scans a bounded window line by line and reassembles until the triple is
// complete.
type PetSud struct {
	logger *slog.Logger
}

func NewPetSud(logger *slog.Logger) *PetSud {
	return &PetSud{logger: logger}
}

func (e *PetSud) Operator() string { return "Petróleos Sudamericanos S.A." }

var (
	psIncidentRe   = regexp.MustCompile(`(?i)N[°º]\s*DE\s*COMUNICADO\s+(\d+)`)
	psConcessionRe = regexp.MustCompile(`(?i)Área operativa\s*/\s*concesión\s+(.+)`)
	psOilFieldRe   = regexp.MustCompile(`(?i)Yacimiento\s+(.+)`)
	psFacilityRe   = regexp.MustCompile(`(?i)Tipo de instalación\s+(.+)`)
	psSubtypeRe    = regexp.MustCompile(`(?i)Subtipo de incidente\s+(.+)`)
	psMagnitudeRe  = regexp.MustCompile(`(?i)Magnitud del Incidente\s+(.+)`)
	psDescRe       = regexp.MustCompile(`(?i)Descripción de la rotura y afectación\s*\n(.+)`)
	psDateRe       = regexp.MustCompile(`(?i)Fecha de ocurrencia\s+(\d{1,2}/\d{1,2}/\d{4})`)
	psTimeRe       = regexp.MustCompile(`(?i)Hora de ocurrencia\s+(\d{1,2}:\d{2})`)

	psLatLabelRe = regexp.MustCompile(`(?i)Coordenadas x\s*\(latitud\s*-\s*S\)`)
	psLonLabelRe = regexp.MustCompile(`(?i)Coordenadas y\s*\(Longitud\s*-\s*O\)`)

	psSpilledRe   = regexp.MustCompile(`(?i)Volumen\s+m3?\s+derramado\s+([\d.,]+)`)
	psRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+m3?\s+recuperado\s+([\d.,]+)`)
	psWaterRe     = regexp.MustCompile(`(?i)%\s*AGUA\s+DERRAMAD[OA]\s+([\d.,]+)`)
	psAreaRe      = regexp.MustCompile(`(?i)Área\s+m2\s+([\d.,]+)`)
	psPPMRe       = regexp.MustCompile(`(?i)Concentración de hidrocarburo\s*\(ppm\)\s+([\d.,]+)`)

	// psStopFieldRe matches the start of any other table field; a line that
	// matches it and carries no degree figure ends coordinate capture.
	psStopFieldRe = regexp.MustCompile(`(?i)Coordenadas|Concentraci|Volumen|rea|Medidas|Suelo|Fecha|Hora|Operador|Tipo|Subtipo|Magnitud|Descripci`)
	psDegreeRe    = regexp.MustCompile(`\d+\s*[°º]`)

	// psDMSCharsRe keeps only characters that can be part of a DMS value.
	psDMSCharsRe = regexp.MustCompile("[^\\d°º'\".,′″´\\s]")
)

// psResources are the affected-resource checklist rows; a row followed by an
// "x" mark is considered ticked.
var psResources = []string{"Suelo", "Cauce aluvional", "Agua superficial", "Vegetacion", "Otros"}

func (e *PetSud) Extract(text string) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord
	rec.Operator = e.Operator()

	num := FindField(text, psIncidentRe)
	if num == "" {
		return rec, missingField("incident id")
	}
	rec.IncidentID = "PETSUD-" + num

	rec.ConcessionArea = FindField(text, psConcessionRe)
	rec.OilField = FindField(text, psOilFieldRe)
	rec.FacilityType = FindField(text, psFacilityRe)
	rec.IncidentSubtype = FindField(text, psSubtypeRe)
	rec.Description = abbreviate(FindField(text, psDescRe))
	rec.IncidentTime = FindField(text, psTimeRe)

	if raw := FindField(text, psDateRe); raw != "" {
		date, err := NormalizeDate(raw)
		if err != nil {
			return rec, err
		}
		rec.IncidentDate = date
	}

	latRaw := e.coordWindow(text, psLatLabelRe)
	lonRaw := e.coordWindow(text, psLonLabelRe)
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

	if rec.VolumeSpilledM3, err = FindFloat(text, psSpilledRe); err != nil {
		return rec, err
	}
	if rec.VolumeRecoveredM3, err = FindFloat(text, psRecoveredRe); err != nil {
		return rec, err
	}
	if rec.WaterPercentage, err = FindFloat(text, psWaterRe); err != nil {
		return rec, err
	}
	if rec.AffectedAreaM2, err = FindFloat(text, psAreaRe); err != nil {
		return rec, err
	}

	var ticked []string
	for _, res := range psResources {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(res) + `\s+x`)
		if re.MatchString(text) {
			ticked = append(ticked, res)
		}
	}
	rec.AffectedResources = strings.Join(ticked, ", ")

	rec.Magnitude = FindField(text, psMagnitudeRe)
	if rec.Magnitude == "" {
		ppm, _ := FindFloat(text, psPPMRe)
		rec.Magnitude = domain.InferMagnitude(rec.VolumeSpilledM3, ppm)
	}

	return rec, nil
}

// coordWindowSize bounds how far past a coordinate label the scan looks.
const coordWindowSize = 150

// coordWindow collects the raw DMS text following a coordinate label.
// It walks lines inside a bounded window, accumulating until the collected
// text contains a complete degrees-minutes-seconds triple, and stops early
// if a line starts another table field without carrying a degree figure.
func (e *PetSud) coordWindow(text string, labelRe *regexp.Regexp) string {
	loc := labelRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	end := loc[1] + coordWindowSize
	if end > len(text) {
		end = len(text)
	}

	var collected []string
	for _, line := range strings.Split(text[loc[1]:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if psStopFieldRe.MatchString(line) && !psDegreeRe.MatchString(line) {
			break
		}
		collected = append(collected, line)
		if geo.IsCompleteDMS(strings.Join(collected, " ")) {
			break
		}
	}

	combined := psDMSCharsRe.ReplaceAllString(strings.Join(collected, " "), "")
	combined = strings.TrimSpace(combined)
	if !psDegreeRe.MatchString(combined) {
		return ""
	}
	return combined
}
