// Package export writes the persisted incident set to an Excel workbook for
// reporting and a GIS-ready CSV for direct loading into QGIS.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/basinwatch/incident-data-etl/internal/domain"
	"github.com/basinwatch/incident-data-etl/internal/observability"
)

const (
	// ExcelFilename is the human-facing workbook.
	ExcelFilename = "incidentes.xlsx"
	// CSVFilename is the QGIS import file: comma separated, period decimals.
	CSVFilename = "incidentes_qgis.csv"

	sheetName = "Incidents"
)

var headers = []string{
	"INCIDENT_ID",
	"OPERATOR",
	"CONCESSION_AREA",
	"OIL_FIELD",
	"FACILITY_TYPE",
	"SUBTYPE",
	"MAGNITUDE",
	"DATE",
	"TIME",
	"SUMMARY_DESCRIPTION",
	"LATITUDE",
	"LONGITUDE",
	"SOURCE_NOTATION",
	"VOLUME_SPILLED_M3",
	"VOLUME_RECOVERED_M3",
	"WATER_PCT",
	"AFFECTED_AREA_M2",
	"AFFECTED_RESOURCES",
	"PROCESSED_AT",
}

// Lister supplies the rows to export.
type Lister interface {
	ListAll(ctx context.Context) ([]domain.IncidentRecord, error)
}

// Service produces both export files from the stored incident set.
type Service struct {
	store   Lister
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewService(store Lister, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: metrics}
}

// Export writes both files into dir, creating it if needed. Existing files
// are replaced wholesale so the exports always mirror the database.
func (s *Service) Export(ctx context.Context, dir string) error {
	start := time.Now()

	recs, err := s.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list incidents for export: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	xlsxPath := filepath.Join(dir, ExcelFilename)
	if err := writeExcel(xlsxPath, recs); err != nil {
		return err
	}
	csvPath := filepath.Join(dir, CSVFilename)
	if err := writeCSV(csvPath, recs); err != nil {
		return err
	}

	s.metrics.RowsExported.Add(float64(len(recs)))
	s.logger.Info("export complete",
		"rows", len(recs),
		"xlsx", xlsxPath,
		"csv", csvPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func writeExcel(path string, recs []domain.IncidentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	idx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for rowIdx, rec := range recs {
		for colIdx, v := range rowValues(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	// Widen the columns a reader actually scans.
	_ = f.SetColWidth(sheetName, "A", "A", 24) // incident id
	_ = f.SetColWidth(sheetName, "B", "B", 30) // operator
	_ = f.SetColWidth(sheetName, "C", "F", 24)
	_ = f.SetColWidth(sheetName, "J", "J", 60) // description
	_ = f.SetColWidth(sheetName, "K", "L", 14) // coordinates
	_ = f.SetColWidth(sheetName, "R", "R", 30) // resources
	_ = f.SetColWidth(sheetName, "S", "S", 22) // processed at

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeCSV(path string, recs []domain.IncidentRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv create: %w", err)
	}
	defer out.Close()

	// BOM so QGIS and Excel both read the UTF-8 field values correctly.
	if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}

	w := csv.NewWriter(out)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, rec := range recs {
		row := make([]string, len(headers))
		for i, v := range rowValues(rec) {
			row[i] = stringify(v)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return nil
}

// rowValues lays out one record in header order.
func rowValues(rec domain.IncidentRecord) []any {
	return []any{
		rec.IncidentID,
		rec.Operator,
		rec.ConcessionArea,
		rec.OilField,
		rec.FacilityType,
		rec.IncidentSubtype,
		rec.Magnitude,
		rec.IncidentDate,
		rec.IncidentTime,
		rec.Description,
		rec.Lat,
		rec.Lon,
		rec.SourceNotation,
		optional(rec.VolumeSpilledM3),
		optional(rec.VolumeRecoveredM3),
		optional(rec.WaterPercentage),
		optional(rec.AffectedAreaM2),
		rec.AffectedResources,
		rec.ProcessedAt.UTC().Format(time.RFC3339),
	}
}

// optional flattens an unreported numeric field to an empty cell.
func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// stringify renders a cell value for CSV. Floats always use a period
// decimal separator, which is what QGIS expects.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
