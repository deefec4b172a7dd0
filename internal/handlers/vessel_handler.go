package handlers

import (
	"encoding/json"
	"net/http"

	"portops-backend/internal/cache"
	"portops-backend/internal/models"
	"portops-backend/internal/repositories"

	"github.com/gorilla/mux"
)

type VesselHandler struct {
	Repo *repositories.VesselRepository
}

func NewVesselHandler(repo *repositories.VesselRepository) *VesselHandler {
	return &VesselHandler{Repo: repo}
}

func (h *VesselHandler) ListVessels(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if vessels == nil {
		vessels = []*models.Vessel{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vessels)
}

func (h *VesselHandler) GetVessel(w http.ResponseWriter, r *http.Request) {
	vessel, err := h.Repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vessel)
}

// UpsertVessels accepts one vessel or a batch; existing ids update,
// new ids insert. Vessels are never bulk-deleted through this path.
func (h *VesselHandler) UpsertVessels(w http.ResponseWriter, r *http.Request) {
	var vessels []*models.Vessel
	if err := json.NewDecoder(r.Body).Decode(&vessels); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, v := range vessels {
		if v.ID == "" {
			v.ID = models.NewID()
		}
	}
	if err := h.Repo.UpsertMany(r.Context(), vessels); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	cache.InvalidateVesselCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vessels)
}

func (h *VesselHandler) DeleteVessel(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	cache.InvalidateVesselCaches(r.Context())
	cache.InvalidateContainerCaches(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
