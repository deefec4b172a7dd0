package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portops-backend/internal/cache"
	"portops-backend/internal/services"
)

type StatisticsHandler struct {
	Service *services.StatisticsService
	PDF     *services.ReportPDFService
}

func NewStatisticsHandler(service *services.StatisticsService, pdf *services.ReportPDFService) *StatisticsHandler {
	return &StatisticsHandler{Service: service, PDF: pdf}
}

type statsResponse struct {
	Rows   []services.ProductionRow  `json:"rows"`
	Totals services.ProductionTotals `json:"totals"`
}

func statsFilterFromQuery(r *http.Request) services.StatsFilter {
	q := r.URL.Query()
	var f services.StatsFilter
	if v, err := strconv.Atoi(q.Get("month")); err == nil {
		f.Month = v
	}
	if v, err := strconv.Atoi(q.Get("year")); err == nil {
		f.Year = v
	}
	f.DateFrom = q.Get("from")
	f.DateTo = q.Get("to")
	if names := q.Get("names"); names != "" {
		for _, n := range strings.Split(names, ",") {
			if n = strings.TrimSpace(n); n != "" {
				f.Names = append(f.Names, n)
			}
		}
	}
	return f
}

// cache key includes the filter so different views never collide
func statsCacheKey(kind string, f services.StatsFilter) string {
	return fmt.Sprintf(cache.StatsKeyFmt,
		fmt.Sprintf("%s:%d:%d:%s:%s:%s", kind, f.Month, f.Year, f.DateFrom, f.DateTo, strings.Join(f.Names, "|")))
}

func (h *StatisticsHandler) aggregate(r *http.Request, kind string) (*statsResponse, services.StatsFilter, error) {
	filter := statsFilterFromQuery(r)

	var (
		rows   []services.ProductionRow
		totals services.ProductionTotals
		err    error
	)
	if kind == "mechanical" {
		rows, totals, err = h.Service.Mechanical(r.Context(), filter)
	} else {
		rows, totals, err = h.Service.Worker(r.Context(), filter)
	}
	if err != nil {
		return nil, filter, err
	}
	if rows == nil {
		rows = []services.ProductionRow{}
	}
	return &statsResponse{Rows: rows, Totals: totals}, filter, nil
}

func (h *StatisticsHandler) serveJSON(w http.ResponseWriter, r *http.Request, kind string) {
	filter := statsFilterFromQuery(r)
	key := statsCacheKey(kind, filter)
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	resp, _, err := h.aggregate(r, kind)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	cache.SetCached(r.Context(), key, data, 5*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// WorkerStats returns the labor shift aggregation.
func (h *StatisticsHandler) WorkerStats(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "worker")
}

// MechanicalStats returns the mechanical tonnage aggregation.
func (h *StatisticsHandler) MechanicalStats(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, "mechanical")
}

// StatsPDF renders a production statement; ?kind=worker|mechanical.
func (h *StatisticsHandler) StatsPDF(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "mechanical" {
		kind = "worker"
	}

	resp, _, err := h.aggregate(r, kind)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	data, err := h.PDF.GenerateProductionPDF(kind, resp.Rows, resp.Totals)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="production_%s.pdf"`, kind))
	w.Write(data)
}

// StatsCSV exports a production statement for the accounting sheet.
func (h *StatisticsHandler) StatsCSV(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "mechanical" {
		kind = "worker"
	}

	resp, _, err := h.aggregate(r, kind)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	data, err := h.PDF.GenerateProductionCSV(kind, resp.Rows, resp.Totals)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="production_%s.csv"`, kind))
	w.Write(data)
}
