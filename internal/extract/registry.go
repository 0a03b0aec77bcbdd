package extract

import (
	"log/slog"
	"strings"

	"github.com/basinwatch/incident-data-etl/internal/domain"
)

// Extractor maps one operator's raw report text to a candidate record.
// Implementations must fill every field they can locate and leave the rest
// empty; they fail only when a mandatory field (incident id, a coordinate
// pair) cannot be found, or when a located field is corrupt.
type Extractor interface {
	Operator() string
	Extract(text string) (domain.IncidentRecord, error)
}

// registryEntry binds a detection keyword to its extractor. Order matters:
// the first keyword found in a document wins.
type registryEntry struct {
	keyword   string
	extractor Extractor
}

// Registry detects the operator dialect of a document by keyword and returns
// the matching extractor. Keyword comparison is accent- and case-insensitive
// because scanned reports spell company names inconsistently.
type Registry struct {
	entries []registryEntry
}

// NewRegistry builds the fixed, ordered keyword registry for the five
// supported operators. Adding an operator is a new extractor plus one entry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{entries: []registryEntry{
		{"YPF S.A.", NewYPF(logger)},
		{"PLUSPETROL", NewPluspetrol(logger)},
		{"PETROLEOS SUDAMERICANOS", NewPetSud(logger)},
		{"ACONCAGUA ENERGIA", NewAconcagua(logger)},
		{"PCR", NewPCR(logger)},
		{"COMODORO RIVADAVIA", NewPCR(logger)},
	}}
}

// Detect returns the extractor for the first registry keyword present in the
// document text, or domain.ErrUnknownOperator when none matches.
func (r *Registry) Detect(text string) (Extractor, error) {
	folded := foldUpper(text)
	for _, e := range r.entries {
		if strings.Contains(folded, foldUpper(e.keyword)) {
			return e.extractor, nil
		}
	}
	return nil, domain.ErrUnknownOperator
}
