package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"portops-backend/internal/cache"
	"portops-backend/internal/models"
	"portops-backend/internal/repositories"
	"portops-backend/internal/services"
)

// 25 MB cap on import uploads
const maxImportSize = 25 << 20

type ContainerHandler struct {
	Repo     *repositories.ContainerRepository
	Importer *services.ImportService
}

func NewContainerHandler(repo *repositories.ContainerRepository, importer *services.ImportService) *ContainerHandler {
	return &ContainerHandler{Repo: repo, Importer: importer}
}

// ListContainers returns all containers, optionally scoped to a vessel
// with ?vesselId=.
func (h *ContainerHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	var (
		containers []*models.Container
		err        error
	)
	if vesselID := r.URL.Query().Get("vesselId"); vesselID != "" {
		containers, err = h.Repo.ListByVessel(r.Context(), vesselID)
	} else {
		containers, err = h.Repo.List(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if containers == nil {
		containers = []*models.Container{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(containers)
}

func (h *ContainerHandler) GetContainer(w http.ResponseWriter, r *http.Request) {
	container, err := h.Repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Container not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(container)
}

// ImportRows merges pre-parsed spreadsheet rows into a vessel's set.
func (h *ContainerHandler) ImportRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VesselID string            `json:"vesselId"`
		Rows     []services.RawRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Importer.Run(r.Context(), req.VesselID, req.Rows)
	if err != nil {
		if errors.Is(err, services.ErrVesselRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ImportFile accepts a multipart upload (field "file") of .xlsx or .csv.
func (h *ContainerHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	vesselID := r.FormValue("vesselId")

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.Importer.RunFile(r.Context(), vesselID, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrVesselRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// UpdateContainer patches status/approval/notes fields on one record.
func (h *ContainerHandler) UpdateContainer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateFields(r.Context(), id, &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Container not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	cache.InvalidateContainerCaches(r.Context())

	container, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(container)
}

// ReplaceContainers swaps a vessel's full container set in one
// transaction. Cross-client full saves are last-write-wins; partial
// edits should go through PATCH or the bulk upsert instead.
func (h *ContainerHandler) ReplaceContainers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VesselID   string              `json:"vesselId"`
		Containers []*models.Container `json:"containers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.VesselID == "" {
		http.Error(w, services.ErrVesselRequired.Error(), http.StatusBadRequest)
		return
	}

	for _, c := range req.Containers {
		if c.ID == "" {
			c.ID = models.NewID()
		}
		c.VesselID = req.VesselID
	}
	if err := h.Repo.ReplaceAllForVessel(r.Context(), req.VesselID, req.Containers); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	cache.InvalidateContainerCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req.Containers)
}

// UpsertContainers bulk-upserts records by id without touching the rest
// of the vessel's set.
func (h *ContainerHandler) UpsertContainers(w http.ResponseWriter, r *http.Request) {
	var containers []*models.Container
	if err := json.NewDecoder(r.Body).Decode(&containers); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, c := range containers {
		if c.ID == "" {
			c.ID = models.NewID()
		}
	}
	if err := h.Repo.UpsertMany(r.Context(), containers); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	cache.InvalidateContainerCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(containers)
}
