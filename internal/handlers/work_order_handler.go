package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"portops-backend/internal/models"
	"portops-backend/internal/services"
)

type WorkOrderHandler struct {
	Service *services.WorkOrderService
}

func NewWorkOrderHandler(s *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{Service: s}
}

func (h *WorkOrderHandler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if orders == nil {
		orders = []*models.WorkOrder{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *WorkOrderHandler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Work order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func workOrderValidationStatus(err error) (int, bool) {
	if errors.Is(err, services.ErrNoWorkersNamed) || errors.Is(err, services.ErrNoContainers) {
		return http.StatusBadRequest, true
	}
	return 0, false
}

// SaveWorkOrder upserts one order.
func (h *WorkOrderHandler) SaveWorkOrder(w http.ResponseWriter, r *http.Request) {
	var order models.WorkOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveOne(r.Context(), &order); err != nil {
		if status, ok := workOrderValidationStatus(err); ok {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&order)
}

// ReplaceWorkOrders swaps the whole collection.
func (h *WorkOrderHandler) ReplaceWorkOrders(w http.ResponseWriter, r *http.Request) {
	var orders []*models.WorkOrder
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ReplaceAll(r.Context(), orders); err != nil {
		if status, ok := workOrderValidationStatus(err); ok {
			http.Error(w, err.Error(), status)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}
