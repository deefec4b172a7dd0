package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"portops-backend/internal/models"
	"portops-backend/internal/services"
)

type TallyHandler struct {
	Service *services.TallyService
	PDF     *services.ReportPDFService
}

func NewTallyHandler(service *services.TallyService, pdf *services.ReportPDFService) *TallyHandler {
	return &TallyHandler{Service: service, PDF: pdf}
}

// ListReports returns all reports with derived numbers, newest first.
func (h *TallyHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if reports == nil {
		reports = []services.NumberedReport{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

// SaveReport upserts one report.
func (h *TallyHandler) SaveReport(w http.ResponseWriter, r *http.Request) {
	var report models.TallyReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveOne(r.Context(), &report); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&report)
}

// ReplaceReports swaps the whole collection.
func (h *TallyHandler) ReplaceReports(w http.ResponseWriter, r *http.Request) {
	var reports []*models.TallyReport
	if err := json.NewDecoder(r.Body).Decode(&reports); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ReplaceAll(r.Context(), reports); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

// AddItem appends one container to a report, behind the customs gate.
func (h *TallyHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	var item models.TallyItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.Service.AddItem(r.Context(), reportID, item)
	if err != nil {
		if errors.Is(err, services.ErrContainerNotReleased) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// ApproveReports approves the selected reports and completes their
// containers atomically.
func (h *TallyHandler) ApproveReports(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportIDs []string `json:"reportIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Approve(r.Context(), req.ReportIDs); err != nil {
		if errors.Is(err, services.ErrNoReportsSelected) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"approved": true})
}

// ListGroups returns the reconstructed report groups.
func (h *TallyHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.Groups(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if groups == nil {
		groups = []services.ReportGroup{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}

// PrintGroups returns the paginated print view.
func (h *TallyHandler) PrintGroups(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Service.PrintPages(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if pages == nil {
		pages = []services.PrintPage{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pages)
}

// ReportPDF renders one report group as a tally sheet.
func (h *TallyHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	groups, err := h.Service.Groups(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	for _, g := range groups {
		if g.ReportID != reportID {
			continue
		}
		data, err := h.PDF.GenerateTallyPDF(g)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		filename := "tally_" + strings.ReplaceAll(g.ReportNo, " ", "") + ".pdf"
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(data)
		return
	}
	http.Error(w, "Report not found", http.StatusNotFound)
}

// BulkPDFZip renders every report group and streams a ZIP.
func (h *TallyHandler) BulkPDFZip(w http.ResponseWriter, r *http.Request) {
	pdfs, err := h.PDF.GenerateBulkTallyPDFs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	zipData, err := h.PDF.CreateBulkPDFZip(pdfs)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="tally_sheets.zip"`)
	w.Write(zipData)
}
