// Package sqlite persists incident records in a single-file SQLite database.
// The incidents table is create-only: rows are inserted once, keyed by the
// natural incident id, and never updated or deleted afterwards.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/basinwatch/incident-data-etl/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS incidents (
	incident_id         TEXT PRIMARY KEY,
	operator            TEXT NOT NULL,
	concession_area     TEXT,
	oil_field           TEXT,
	facility_type       TEXT,
	incident_subtype    TEXT,
	magnitude           TEXT,
	incident_date       TEXT,
	incident_time       TEXT,
	description         TEXT,
	lat                 REAL NOT NULL,
	lon                 REAL NOT NULL,
	source_notation     TEXT,
	projected_easting   REAL,
	projected_northing  REAL,
	volume_spilled_m3   REAL,
	volume_recovered_m3 REAL,
	water_percentage    REAL,
	affected_area_m2    REAL,
	affected_resources  TEXT,
	processed_at        TEXT NOT NULL
);`

// Store wraps the SQLite connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// without a busy-timeout dance.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("database opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert writes one record. An already-present incident id fails with
// domain.ErrDuplicateIncident and leaves the stored row untouched.
func (s *Store) Insert(ctx context.Context, rec domain.IncidentRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO incidents (
			incident_id, operator, concession_area, oil_field, facility_type,
			incident_subtype, magnitude, incident_date, incident_time, description,
			lat, lon, source_notation, projected_easting, projected_northing,
			volume_spilled_m3, volume_recovered_m3, water_percentage,
			affected_area_m2, affected_resources, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(incident_id) DO NOTHING`,
		rec.IncidentID, rec.Operator, rec.ConcessionArea, rec.OilField, rec.FacilityType,
		rec.IncidentSubtype, rec.Magnitude, rec.IncidentDate, rec.IncidentTime, rec.Description,
		rec.Lat, rec.Lon, rec.SourceNotation, rec.ProjectedEasting, rec.ProjectedNorthing,
		rec.VolumeSpilledM3, rec.VolumeRecoveredM3, rec.WaterPercentage,
		rec.AffectedAreaM2, rec.AffectedResources, rec.ProcessedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert incident %s: %w", rec.IncidentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert incident %s: %w", rec.IncidentID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIncident, rec.IncidentID)
	}
	return nil
}

// KnownIDs returns the set of incident ids already persisted.
func (s *Store) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT incident_id FROM incidents`)
	if err != nil {
		return nil, fmt.Errorf("list incident ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan incident id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ListAll returns every stored record ordered by incident id, for export.
func (s *Store) ListAll(ctx context.Context) ([]domain.IncidentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT incident_id, operator, concession_area, oil_field, facility_type,
			incident_subtype, magnitude, incident_date, incident_time, description,
			lat, lon, source_notation, projected_easting, projected_northing,
			volume_spilled_m3, volume_recovered_m3, water_percentage,
			affected_area_m2, affected_resources, processed_at
		FROM incidents ORDER BY incident_id`)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	var recs []domain.IncidentRecord
	for rows.Next() {
		var rec domain.IncidentRecord
		var easting, northing, spilled, recovered, water, area sql.NullFloat64
		var processedAt string
		if err := rows.Scan(
			&rec.IncidentID, &rec.Operator, &rec.ConcessionArea, &rec.OilField, &rec.FacilityType,
			&rec.IncidentSubtype, &rec.Magnitude, &rec.IncidentDate, &rec.IncidentTime, &rec.Description,
			&rec.Lat, &rec.Lon, &rec.SourceNotation, &easting, &northing,
			&spilled, &recovered, &water, &area, &rec.AffectedResources, &processedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		rec.ProjectedEasting = nullableFloat(easting)
		rec.ProjectedNorthing = nullableFloat(northing)
		rec.VolumeSpilledM3 = nullableFloat(spilled)
		rec.VolumeRecoveredM3 = nullableFloat(recovered)
		rec.WaterPercentage = nullableFloat(water)
		rec.AffectedAreaM2 = nullableFloat(area)
		if t, err := time.Parse(time.RFC3339, processedAt); err == nil {
			rec.ProcessedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
