package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"portops-backend/internal/cache"
	"portops-backend/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// Metrics returns the operational signal counts. Only the unfiltered
// view is cached; filtered queries are cheap enough to recompute.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := services.DashboardFilters{
		VesselID:  q.Get("vesselId"),
		Consignee: q.Get("consignee"),
		PlanFrom:  q.Get("from"),
		PlanTo:    q.Get("to"),
	}
	if v, err := strconv.Atoi(q.Get("month")); err == nil {
		filters.Month = v
	}
	if v, err := strconv.Atoi(q.Get("year")); err == nil {
		filters.Year = v
	}

	unfiltered := filters == (services.DashboardFilters{})
	if unfiltered {
		if data, ok := cache.GetCached(r.Context(), cache.DashboardKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	metrics, err := h.Service.Metrics(r.Context(), filters)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	data, err := json.Marshal(metrics)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if unfiltered {
		cache.SetCached(r.Context(), cache.DashboardKey, data, 2*time.Minute)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
