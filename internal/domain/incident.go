package domain

import "time"

// Coordinate source notations, recorded for auditing which path produced the
// geographic pair.
const (
	NotationDecimalDegrees = "WGS84-DD"
	NotationDMS            = "WGS84-DMS"
	NotationGaussKruger    = "GK2"
)

// RawDocument is one incident report after text extraction: an opaque text
// blob plus the filename it came from. It lives for a single pipeline pass.
// ReadErr is set when the report could not be read at all; the document then
// carries no text and is rejected downstream without being dropped from the
// run.
type RawDocument struct {
	Name    string
	Text    string
	ReadErr error
}

// IncidentRecord is the normalized unit produced by extraction. IncidentID is
// the natural key; records are created once and never updated. Optional
// numeric fields are pointers so "not reported" stays distinct from zero.
type IncidentRecord struct {
	IncidentID      string
	Operator        string
	ConcessionArea  string
	OilField        string
	FacilityType    string
	IncidentSubtype string
	Magnitude       string
	IncidentDate    string // canonical dd-mm-yyyy
	IncidentTime    string
	Description     string

	Lat            float64
	Lon            float64
	SourceNotation string

	// Present only when the source document reported a projected pair.
	// Derived for auditing, never authoritative.
	ProjectedEasting  *float64
	ProjectedNorthing *float64

	VolumeSpilledM3   *float64
	VolumeRecoveredM3 *float64
	WaterPercentage   *float64
	AffectedAreaM2    *float64
	AffectedResources string

	ProcessedAt time.Time
}

// Outcome is the terminal state of one document's trip through the pipeline.
type Outcome string

const (
	OutcomePersisted          Outcome = "persisted"
	OutcomeRejectedDuplicate  Outcome = "rejected_duplicate"
	OutcomeRejectedInvalid    Outcome = "rejected_invalid"
	OutcomeRejectedParseError Outcome = "rejected_parse_error"
)

// Magnitude labels per Res. 24-04 / Dec. 437-93 thresholds.
const (
	MagnitudeMajor        = "Mayor"
	MagnitudeMinor        = "Menor"
	MagnitudeUndetermined = "No determinado"
)

// InferMagnitude classifies an incident's magnitude from spilled volume and
// hydrocarbon concentration when the document does not state one. With
// ppm > 50 (or unknown) the major threshold is 5 m³, otherwise 10 m³.
// This is a fallback; water-course involvement can raise the real value.
func InferMagnitude(volM3, ppm *float64) string {
	if volM3 == nil {
		return MagnitudeUndetermined
	}
	threshold := 5.0
	if ppm != nil && *ppm <= 50 {
		threshold = 10.0
	}
	if *volM3 > threshold {
		return MagnitudeMajor
	}
	return MagnitudeMinor
}
