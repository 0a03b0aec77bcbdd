package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basinwatch/incident-data-etl/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func f(v float64) *float64 { return &v }

func sampleRecord(id string) domain.IncidentRecord {
	return domain.IncidentRecord{
		IncidentID:        id,
		Operator:          "YPF S.A.",
		ConcessionArea:    "BLOQUE SIMULADO",
		OilField:          "YACIMIENTO FICTICIO OESTE",
		IncidentSubtype:   "DERRAME DE AGUA DE PRODUCCIÓN",
		Magnitude:         "Menor",
		IncidentDate:      "10-10-2025",
		IncidentTime:      "10:00",
		Description:       "Pérdida en línea de conducción",
		Lat:               -37.333333,
		Lon:               -69.05,
		SourceNotation:    domain.NotationDecimalDegrees,
		VolumeSpilledM3:   f(8.5),
		VolumeRecoveredM3: f(1.0),
		WaterPercentage:   f(99.8),
		AffectedAreaM2:    f(1250),
		AffectedResources: "Suelo, Cauce aluvional",
		ProcessedAt:       time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestInsertAndListAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleRecord("YPF-0000123456")
	require.NoError(t, store.Insert(ctx, want))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestInsertDuplicateLeavesOriginalUntouched(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	original := sampleRecord("YPF-1")
	require.NoError(t, store.Insert(ctx, original))

	changed := original
	changed.Magnitude = "Mayor"
	changed.Lat = -36.0
	err := store.Insert(ctx, changed)
	require.ErrorIs(t, err, domain.ErrDuplicateIncident)

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Menor", got[0].Magnitude)
	assert.InDelta(t, -37.333333, got[0].Lat, 1e-9)
}

func TestInsertPreservesNilOptionalFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("PP-1")
	rec.VolumeSpilledM3 = nil
	rec.WaterPercentage = nil
	rec.ProjectedEasting = f(2552676.15)
	rec.ProjectedNorthing = f(5858413.69)
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].VolumeSpilledM3)
	assert.Nil(t, got[0].WaterPercentage)
	require.NotNil(t, got[0].ProjectedEasting)
	assert.InDelta(t, 2552676.15, *got[0].ProjectedEasting, 1e-6)
}

func TestKnownIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ids, err := store.KnownIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Insert(ctx, sampleRecord("YPF-1")))
	require.NoError(t, store.Insert(ctx, sampleRecord("PCR-MDZ-2")))

	ids, err = store.KnownIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "YPF-1")
	assert.Contains(t, ids, "PCR-MDZ-2")
}

func TestListAllOrdersByIncidentID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"YPF-2", "ACO-CH-28", "PP-10"} {
		require.NoError(t, store.Insert(ctx, sampleRecord(id)))
	}

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "ACO-CH-28", got[0].IncidentID)
	assert.Equal(t, "PP-10", got[1].IncidentID)
	assert.Equal(t, "YPF-2", got[2].IncidentID)
}

func TestOpenCreatesFileAndSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidents.db")
	ctx := context.Background()

	store, err := Open(ctx, path, testLogger())
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, sampleRecord("YPF-9")))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	ids, err := reopened.KnownIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "YPF-9")
}
