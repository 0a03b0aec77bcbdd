package domain

import "errors"

// Sentinel errors for the pipeline's rejection taxonomy. Parse-level causes
// (malformed angles, numeric and date parse failures) live next to the code
// that raises them; everything here is what the orchestrator classifies on.
var (
	// ErrMissingField reports a mandatory field (incident id, coordinates)
	// that could not be located at all; wrap it with the field name.
	ErrMissingField = errors.New("mandatory field missing")

	// ErrUnknownOperator means no registry keyword matched the document.
	ErrUnknownOperator = errors.New("unknown operator format")

	// ErrDuplicateIncident is returned by the store on a primary-key
	// violation. Expected and routine in a re-run-safe pipeline.
	ErrDuplicateIncident = errors.New("duplicate incident id")

	// Validation rule violations.
	ErrOutOfBasin          = errors.New("coordinates outside basin bounding box")
	ErrVolumeInconsistent  = errors.New("recovered volume exceeds spilled volume")
	ErrWaterPercentInvalid = errors.New("water percentage outside [0,100]")
)
