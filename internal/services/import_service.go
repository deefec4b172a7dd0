package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"portops-backend/internal/cache"
	"portops-backend/internal/metrics"
	"portops-backend/internal/models"
	"portops-backend/internal/repositories"
	"portops-backend/internal/storage"
	"portops-backend/internal/timeutil"
	"portops-backend/internal/ws"
)

// ImportService runs the container import pipeline: parse the upload,
// merge into the vessel's existing set, write back the replacement set,
// recompute vessel totals, then invalidate caches and notify clients.
type ImportService struct {
	Containers *repositories.ContainerRepository
	Vessels    *repositories.VesselRepository
	Hub        *ws.Hub
	Archive    *storage.Archiver
	Defaults   ImportDefaults
}

func NewImportService(containers *repositories.ContainerRepository, vessels *repositories.VesselRepository, hub *ws.Hub, archive *storage.Archiver, defaults ImportDefaults) *ImportService {
	return &ImportService{
		Containers: containers,
		Vessels:    vessels,
		Hub:        hub,
		Archive:    archive,
		Defaults:   defaults,
	}
}

type ImportResult struct {
	Containers []*models.Container `json:"containers"`
	Summary    ImportSummary       `json:"summary"`
	RowErrors  []RowError          `json:"rowErrors"`
}

// Run merges rows into the vessel's container set and persists the result.
// The read-merge-write is last-write-wins across concurrent clients; the
// replacement itself is transactional per vessel.
func (s *ImportService) Run(ctx context.Context, vesselID string, rows []RawRow) (*ImportResult, error) {
	if vesselID == "" {
		return nil, ErrVesselRequired
	}
	if _, err := s.Vessels.Get(ctx, vesselID); err != nil {
		return nil, fmt.Errorf("vessel %s: %w", vesselID, err)
	}

	existing, err := s.Containers.ListByVessel(ctx, vesselID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	merged, summary, rowErrors := MergeImport(rows, vesselID, existing, s.Defaults, now)
	for _, re := range rowErrors {
		log.Printf("[Import] row %d skipped: %s", re.Row, re.Error)
	}

	if err := s.Containers.ReplaceAllForVessel(ctx, vesselID, merged); err != nil {
		return nil, err
	}
	if err := s.Vessels.UpdateTotals(ctx, vesselID, len(merged), summary.TotalPkgs, summary.TotalWeight); err != nil {
		return nil, err
	}

	cache.InvalidateContainerCaches(ctx)
	cache.InvalidateVesselCaches(ctx)
	s.Hub.Broadcast(ws.Event{Type: "containers.imported", VesselID: vesselID})
	metrics.ImportRowsTotal.WithLabelValues("merged").Add(float64(len(rows) - len(rowErrors)))
	metrics.ImportRowsTotal.WithLabelValues("skipped").Add(float64(len(rowErrors)))

	log.Printf("[Import] vessel %s: %d containers, %d pkgs, %.3f t, %d rows skipped",
		vesselID, len(merged), summary.TotalPkgs, summary.TotalWeight, len(rowErrors))

	return &ImportResult{Containers: merged, Summary: summary, RowErrors: rowErrors}, nil
}

// RunFile parses an uploaded spreadsheet, runs the merge, and archives the
// original upload when object storage is configured.
func (s *ImportService) RunFile(ctx context.Context, vesselID, filename string, file io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	rows, err := ParseSpreadsheet(filename, data)
	if err != nil {
		return nil, err
	}

	result, err := s.Run(ctx, vesselID, rows)
	if err != nil {
		return nil, err
	}

	// best-effort: a failed archive upload never fails the import
	s.Archive.StoreImportFile(vesselID, filename, data)

	return result, nil
}

// ParseSpreadsheet converts an uploaded .xlsx or .csv file into raw rows
// keyed by the header line.
func ParseSpreadsheet(filename string, data []byte) ([]RawRow, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return parseCSV(data)
	}
	return parseXLSX(data)
}

func parseXLSX(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rowsFromCells(rows), nil
}

func parseCSV(data []byte) ([]RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rowsFromCells(records), nil
}

func rowsFromCells(cells [][]string) []RawRow {
	if len(cells) < 2 {
		return nil
	}
	headers := cells[0]
	out := make([]RawRow, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(RawRow, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(line) {
				continue
			}
			row[h] = line[i]
			if strings.TrimSpace(line[i]) != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
