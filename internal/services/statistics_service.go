package services

import (
	"context"

	"portops-backend/internal/repositories"
)

// StatisticsService feeds the production aggregator from the live
// collections. Aggregates are recomputed per query, never stored.
type StatisticsService struct {
	Orders     *repositories.WorkOrderRepository
	Containers *repositories.ContainerRepository
}

func NewStatisticsService(orders *repositories.WorkOrderRepository, containers *repositories.ContainerRepository) *StatisticsService {
	return &StatisticsService{Orders: orders, Containers: containers}
}

func (s *StatisticsService) Worker(ctx context.Context, filter StatsFilter) ([]ProductionRow, ProductionTotals, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, ProductionTotals{}, err
	}
	rows, totals := AggregateWorker(orders, filter)
	return rows, totals, nil
}

func (s *StatisticsService) Mechanical(ctx context.Context, filter StatsFilter) ([]ProductionRow, ProductionTotals, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, ProductionTotals{}, err
	}
	containers, err := s.Containers.List(ctx)
	if err != nil {
		return nil, ProductionTotals{}, err
	}
	rows, totals := AggregateMechanical(orders, containers, filter)
	return rows, totals, nil
}
