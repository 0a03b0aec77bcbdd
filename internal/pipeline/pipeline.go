// Package pipeline orchestrates one processing run: every raw document is
// detected, extracted, validated, and persisted, and each one ends in
// exactly one terminal outcome. A run never stops because a document is
// bad, and a storage failure costs only the document that hit it.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/extract"
	"github.com/basinwatch/incident-data-etl/internal/observability"
)

// Source lists the raw documents for one run.
type Source interface {
	Documents(ctx context.Context) ([]domain.RawDocument, error)
}

// Detector resolves the operator dialect of a document.
type Detector interface {
	Detect(text string) (extract.Extractor, error)
}

// Store persists validated records. Insert is create-only: an existing
// incident id fails with domain.ErrDuplicateIncident and the stored row is
// left untouched.
type Store interface {
	Insert(ctx context.Context, rec domain.IncidentRecord) error
	KnownIDs(ctx context.Context) (map[string]struct{}, error)
}

// Summary is the tally of one run. Processed counts every listed document,
// including the ones skipped because storage failed mid-run.
type Summary struct {
	RunID         string
	Processed     int
	Persisted     int
	Duplicates    int
	Invalid       int
	ParseErrors   int
	StoreFailures int
}

// Pipeline wires source, detection, and storage into the per-document state
// machine.
type Pipeline struct {
	source   Source
	detector Detector
	store    Store
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(source Source, detector Detector, store Store, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:   source,
		detector: detector,
		store:    store,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run processes every document the source lists and returns the run tally.
// Document-level failures become outcomes, and a storage failure skips only
// the document it hit; listing and id loading abort the run before it
// starts.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	start := time.Now()

	docs, err := p.source.Documents(ctx)
	if err != nil {
		return summary, err
	}

	// Known ids are loaded once and extended in-run, so duplicates within a
	// single directory are caught without a round trip per document.
	known, err := p.store.KnownIDs(ctx)
	if err != nil {
		return summary, err
	}

	p.logger.Info("run started", "run_id", summary.RunID, "documents", len(docs))

	for _, doc := range docs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		docStart := time.Now()
		rec, outcome, docErr := p.processDocument(ctx, doc, known)
		if docErr != nil {
			p.logger.Error("storage failed, document skipped",
				"run_id", summary.RunID,
				"document", doc.Name,
				"incident_id", rec.IncidentID,
				"error", docErr,
			)
			p.metrics.DocumentsProcessed.WithLabelValues("store_error").Inc()
			summary.Processed++
			summary.StoreFailures++
			continue
		}
		p.metrics.DocumentDuration.Observe(time.Since(docStart).Seconds())
		p.metrics.DocumentsProcessed.WithLabelValues(string(outcome)).Inc()

		summary.Processed++
		switch outcome {
		case domain.OutcomePersisted:
			summary.Persisted++
		case domain.OutcomeRejectedDuplicate:
			summary.Duplicates++
		case domain.OutcomeRejectedInvalid:
			summary.Invalid++
		case domain.OutcomeRejectedParseError:
			summary.ParseErrors++
		}

		p.logger.Info("document processed",
			"run_id", summary.RunID,
			"document", doc.Name,
			"incident_id", rec.IncidentID,
			"operator", operatorLabel(rec),
			"outcome", string(outcome),
		)
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("run complete",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"persisted", summary.Persisted,
		"duplicates", summary.Duplicates,
		"invalid", summary.Invalid,
		"parse_errors", summary.ParseErrors,
		"store_failures", summary.StoreFailures,
	)
	return summary, nil
}

// operatorLabel names the operator for trace lines. Documents that never
// matched a dialect carry no operator, so the trace says so explicitly.
func operatorLabel(rec domain.IncidentRecord) string {
	if rec.Operator == "" {
		return "unknown"
	}
	return rec.Operator
}

// processDocument walks one document through detection, extraction,
// validation, and insert. The returned error is nil for every per-document
// failure; it is set only when storage itself fails.
func (p *Pipeline) processDocument(ctx context.Context, doc domain.RawDocument, known map[string]struct{}) (domain.IncidentRecord, domain.Outcome, error) {
	if doc.ReadErr != nil {
		p.logger.Warn("text extraction failed", "document", doc.Name, "error", doc.ReadErr)
		return domain.IncidentRecord{}, domain.OutcomeRejectedParseError, nil
	}

	ext, err := p.detector.Detect(doc.Text)
	if err != nil {
		p.logger.Warn("operator not detected", "document", doc.Name, "error", err)
		return domain.IncidentRecord{}, domain.OutcomeRejectedParseError, nil
	}

	rec, err := ext.Extract(doc.Text)
	if err != nil {
		p.logger.Warn("extraction failed",
			"document", doc.Name, "operator", ext.Operator(), "error", err)
		return rec, domain.OutcomeRejectedParseError, nil
	}

	// Duplicate wins over every other validation rule: a re-run outcome is
	// normal and must classify the same way whether or not the record would
	// also fail a later rule.
	if _, dup := known[rec.IncidentID]; dup {
		p.logger.Info("incident already persisted",
			"document", doc.Name, "incident_id", rec.IncidentID)
		return rec, domain.OutcomeRejectedDuplicate, nil
	}

	if err := domain.Validate(rec); err != nil {
		p.logger.Warn("validation failed",
			"document", doc.Name, "incident_id", rec.IncidentID, "error", err)
		return rec, domain.OutcomeRejectedInvalid, nil
	}

	rec = domain.Stamp(rec)
	if err := p.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateIncident) {
			p.logger.Info("incident already persisted",
				"document", doc.Name, "incident_id", rec.IncidentID)
			known[rec.IncidentID] = struct{}{}
			return rec, domain.OutcomeRejectedDuplicate, nil
		}
		return rec, "", err
	}
	known[rec.IncidentID] = struct{}{}

	return rec, domain.OutcomePersisted, nil
}
