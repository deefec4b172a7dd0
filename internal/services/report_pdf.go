package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf/v2"

	"portops-backend/internal/timeutil"
)

// ReportPDFService renders tally sheets and production statements.
// Layout is presentation only; all numbers come from the aggregation
// and grouping services.
type ReportPDFService struct {
	Tally *TallyService
}

func NewReportPDFService(tally *TallyService) *ReportPDFService {
	return &ReportPDFService{Tally: tally}
}

// GenerateTallyPDF renders one report group, one sheet per print page.
func (s *ReportPDFService) GenerateTallyPDF(group ReportGroup) ([]byte, error) {
	pages := PaginateGroups([]ReportGroup{group})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)

	for _, page := range pages {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		title := "TALLY SHEET - " + page.Header
		if page.Mode == "XUAT" {
			title = "EXPORT " + title
		}
		pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Vessel: %s    Date: %02d/%02d/%04d    Shift: %s",
			page.VesselName, page.Day, page.Month, page.Year, page.Shift), "", 1, "C", false, 0, "")
		pdf.CellFormat(190, 6, fmt.Sprintf("Consignee: %s    Equipment: %s",
			page.Consignee, page.Equipment), "", 1, "C", false, 0, "")
		if len(page.WorkerNames) > 0 {
			pdf.CellFormat(190, 6, "Crew: "+strings.Join(page.WorkerNames, ", "), "", 1, "C", false, 0, "")
		}
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Container No", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 7, "Size", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Seal", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Units", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Weight (t)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Notes", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		base := (page.Page - 1) * printRowsPerPage
		for i, row := range page.Rows {
			notes := row.Notes
			if row.IsScratched {
				notes = strings.TrimSpace("scratched floor " + notes)
			}
			if len(notes) > 20 {
				notes = notes[:17] + "..."
			}
			pdf.CellFormat(10, 6, fmt.Sprintf("%d", base+i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, row.ContNo, "1", 0, "C", false, 0, "")
			pdf.CellFormat(20, 6, row.Size, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, row.SealNo, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.0f", row.ActualUnits), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", row.ActualWeight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, notes, "1", 1, "L", false, 0, "")
		}

		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		status := "DRAFT"
		if page.IsApproved {
			status = "APPROVED"
		}
		pdf.CellFormat(190, 5, fmt.Sprintf("Status: %s    Page %d/%d    Printed: %s",
			status, page.Page, page.Pages, timeutil.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateProductionPDF renders a production statement. kind is "worker"
// (shift counts) or "mechanical" (tonnage).
func (s *ReportPDFService) GenerateProductionPDF(kind string, rows []ProductionRow, totals ProductionTotals) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := "LABOR PRODUCTION STATEMENT"
	if kind == "mechanical" {
		title = "MECHANICAL PRODUCTION STATEMENT"
	}
	pdf.CellFormat(277, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Name", "1", 0, "C", true, 0, "")
	if kind == "mechanical" {
		pdf.CellFormat(35, 7, "Vehicle", "1", 0, "C", true, 0, "")
	} else {
		pdf.CellFormat(35, 7, "", "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Method", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Cargo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Normal", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Weekend", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Holiday", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, row := range rows {
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, row.Vehicle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, row.Method, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, row.CargoType, "1", 0, "L", false, 0, "")
		if kind == "mechanical" {
			pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.NormalWeight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.WeekendWeight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.HolidayWeight), "1", 1, "R", false, 0, "")
		} else {
			pdf.CellFormat(24, 6, fmt.Sprintf("%d", row.NormalShifts), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, fmt.Sprintf("%d", row.WeekendShifts), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, fmt.Sprintf("%d", row.HolidayShifts), "1", 1, "R", false, 0, "")
		}
	}

	// totals row must tie out with the rows above
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(205, 7, "TOTAL", "1", 0, "R", true, 0, "")
	if kind == "mechanical" {
		pdf.CellFormat(24, 7, fmt.Sprintf("%.2f", totals.NormalWeight), "1", 0, "R", true, 0, "")
		pdf.CellFormat(24, 7, fmt.Sprintf("%.2f", totals.WeekendWeight), "1", 0, "R", true, 0, "")
		pdf.CellFormat(24, 7, fmt.Sprintf("%.2f", totals.HolidayWeight), "1", 1, "R", true, 0, "")
	} else {
		pdf.CellFormat(24, 7, fmt.Sprintf("%d", totals.NormalShifts), "1", 0, "R", true, 0, "")
		pdf.CellFormat(24, 7, fmt.Sprintf("%d", totals.WeekendShifts), "1", 0, "R", true, 0, "")
		pdf.CellFormat(24, 7, fmt.Sprintf("%d", totals.HolidayShifts), "1", 1, "R", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateBulkTallyPDFs renders every report group in parallel.
func (s *ReportPDFService) GenerateBulkTallyPDFs(ctx context.Context) (map[string][]byte, error) {
	groups, err := s.Tally.Groups(ctx)
	if err != nil {
		return nil, err
	}

	type pdfResult struct {
		name string
		data []byte
		err  error
	}

	jobs := make(chan ReportGroup, len(groups))
	results := make(chan pdfResult, len(groups))

	var wg sync.WaitGroup
	numWorkers := 5
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range jobs {
				data, err := s.GenerateTallyPDF(g)
				results <- pdfResult{name: g.ReportNo, data: data, err: err}
			}
		}()
	}

	for _, g := range groups {
		jobs <- g
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	pdfs := make(map[string][]byte)
	for r := range results {
		if r.err == nil && r.data != nil {
			pdfs[r.name] = r.data
		}
	}
	return pdfs, nil
}

// CreateBulkPDFZip bundles generated sheets into one ZIP download.
func (s *ReportPDFService) CreateBulkPDFZip(pdfs map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for name, pdfData := range pdfs {
		cleanName := "tally_" + strings.ReplaceAll(name, " ", "") + ".pdf"
		fw, err := zw.Create(cleanName)
		if err != nil {
			continue
		}
		fw.Write(pdfData)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateProductionCSV exports a production statement as CSV for the
// accounting spreadsheet.
func (s *ReportPDFService) GenerateProductionCSV(kind string, rows []ProductionRow, totals ProductionTotals) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"#", "Name", "Vehicle", "Date", "Method", "Cargo", "Normal", "Weekend", "Holiday"})
	for i, row := range rows {
		rec := []string{fmt.Sprintf("%d", i+1), row.Name, row.Vehicle, row.Date, row.Method, row.CargoType}
		if kind == "mechanical" {
			rec = append(rec,
				fmt.Sprintf("%.2f", row.NormalWeight),
				fmt.Sprintf("%.2f", row.WeekendWeight),
				fmt.Sprintf("%.2f", row.HolidayWeight))
		} else {
			rec = append(rec,
				fmt.Sprintf("%d", row.NormalShifts),
				fmt.Sprintf("%d", row.WeekendShifts),
				fmt.Sprintf("%d", row.HolidayShifts))
		}
		w.Write(rec)
	}
	if kind == "mechanical" {
		w.Write([]string{"", "TOTAL", "", "", "", "",
			fmt.Sprintf("%.2f", totals.NormalWeight),
			fmt.Sprintf("%.2f", totals.WeekendWeight),
			fmt.Sprintf("%.2f", totals.HolidayWeight)})
	} else {
		w.Write([]string{"", "TOTAL", "", "", "", "",
			fmt.Sprintf("%d", totals.NormalShifts),
			fmt.Sprintf("%d", totals.WeekendShifts),
			fmt.Sprintf("%d", totals.HolidayShifts)})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
