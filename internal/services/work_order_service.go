package services

import (
	"context"
	"strings"

	"portops-backend/internal/cache"
	"portops-backend/internal/models"
	"portops-backend/internal/names"
	"portops-backend/internal/repositories"
	"portops-backend/internal/timeutil"
	"portops-backend/internal/ws"
)

// WorkOrderService validates and persists dispatch orders (PCT).
type WorkOrderService struct {
	Orders *repositories.WorkOrderRepository
	Hub    *ws.Hub
}

func NewWorkOrderService(orders *repositories.WorkOrderRepository, hub *ws.Hub) *WorkOrderService {
	return &WorkOrderService{Orders: orders, Hub: hub}
}

func (s *WorkOrderService) List(ctx context.Context) ([]*models.WorkOrder, error) {
	return s.Orders.List(ctx)
}

func (s *WorkOrderService) Get(ctx context.Context, id string) (*models.WorkOrder, error) {
	return s.Orders.Get(ctx, id)
}

// validateOrder blocks the save entirely before any write.
func validateOrder(order *models.WorkOrder) error {
	if len(names.Resolve(order.WorkerNames, order.TeamName)) == 0 {
		return ErrNoWorkersNamed
	}
	if len(order.ContainerNos) == 0 && len(order.ContainerIDs) == 0 {
		return ErrNoContainers
	}
	return nil
}

func normalizeOrder(order *models.WorkOrder) {
	if order.ID == "" {
		order.ID = models.NewID()
	}
	if order.Status == "" {
		order.Status = models.WorkOrderSubmitted
	}
	// comma-packed names are flattened once, at ingestion
	order.WorkerNames = names.Split(order.WorkerNames)
	if order.PeopleCount == 0 {
		order.PeopleCount = len(order.WorkerNames)
	}
	if strings.TrimSpace(order.Date) == "" {
		order.Date = timeutil.Now().Format(timeutil.DisplayLayout)
	}
	order.UpdatedAt = timeutil.Now()
}

// SaveOne upserts a single order after validation.
func (s *WorkOrderService) SaveOne(ctx context.Context, order *models.WorkOrder) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	normalizeOrder(order)
	if err := s.Orders.UpsertOne(ctx, order); err != nil {
		return err
	}
	cache.InvalidateStatsCaches(ctx)
	s.Hub.Broadcast(ws.Event{Type: "workorders.saved", VesselID: order.VesselID})
	return nil
}

// ReplaceAll swaps the full collection after validating every record;
// one bad order rejects the whole batch before any write.
func (s *WorkOrderService) ReplaceAll(ctx context.Context, orders []*models.WorkOrder) error {
	for _, order := range orders {
		if err := validateOrder(order); err != nil {
			return err
		}
	}
	for _, order := range orders {
		normalizeOrder(order)
	}
	if err := s.Orders.ReplaceAll(ctx, orders); err != nil {
		return err
	}
	cache.InvalidateStatsCaches(ctx)
	s.Hub.Broadcast(ws.Event{Type: "workorders.replaced"})
	return nil
}
