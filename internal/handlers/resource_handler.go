package handlers

import (
	"encoding/json"
	"net/http"

	"portops-backend/internal/models"
	"portops-backend/internal/repositories"
)

// ResourceHandler serves the shared worker and team name lists.
type ResourceHandler struct {
	Repo *repositories.ResourceRepository
	Kind string
}

func NewResourceHandler(repo *repositories.ResourceRepository, kind string) *ResourceHandler {
	return &ResourceHandler{Repo: repo, Kind: kind}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListByKind(r.Context(), h.Kind)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []*models.ResourceItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// ReplaceAll swaps the full list for this kind; the resource screen
// always saves the whole list.
func (h *ResourceHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var items []*models.ResourceItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, item := range items {
		if item.ID == "" {
			item.ID = models.NewID()
		}
		item.Kind = h.Kind
	}
	if err := h.Repo.ReplaceAll(r.Context(), h.Kind, items); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
