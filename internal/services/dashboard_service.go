package services

import (
	"context"
	"time"

	"portops-backend/internal/models"
	"portops-backend/internal/repositories"
	"portops-backend/internal/timeutil"
)

// DashboardService derives the operational signal counts shown on the CS
// dashboard. Nothing is persisted; metrics are recomputed per query.
type DashboardService struct {
	Containers *repositories.ContainerRepository
	Detention  DetentionConfig
}

func NewDashboardService(containers *repositories.ContainerRepository, detention DetentionConfig) *DashboardService {
	return &DashboardService{Containers: containers, Detention: detention}
}

type DashboardFilters struct {
	VesselID  string
	Consignee string
	Month     int // 1-12, 0 = all
	Year      int // 0 = all
	PlanFrom  string
	PlanTo    string
}

type DashboardMetrics struct {
	TotalContainers int `json:"totalContainers"`
	Ready           int `json:"ready"`
	UrgentDetention int `json:"urgentDetention"`
	Completed       int `json:"completed"`
}

func (s *DashboardService) Metrics(ctx context.Context, filters DashboardFilters) (*DashboardMetrics, error) {
	containers, err := s.Containers.List(ctx)
	if err != nil {
		return nil, err
	}
	m := ComputeDashboard(containers, filters, s.Detention, timeutil.Now())
	return &m, nil
}

// ComputeDashboard counts the operational signals over a container set:
// ready means exploitable and not yet completed, urgent means the DET
// classifier says urgent and the box is still open.
func ComputeDashboard(containers []*models.Container, filters DashboardFilters, cfg DetentionConfig, now time.Time) DashboardMetrics {
	var m DashboardMetrics
	for _, c := range containers {
		if !matchesDashboardFilters(c, filters) {
			continue
		}
		m.TotalContainers++
		completed := c.Status == models.StatusCompleted
		if completed {
			m.Completed++
		}
		if IsExploitable(c) && !completed {
			m.Ready++
		}
		if !completed && ClassifyDetention(c.DetExpiry, cfg, now) == DetentionUrgent {
			m.UrgentDetention++
		}
	}
	return m
}

func matchesDashboardFilters(c *models.Container, f DashboardFilters) bool {
	if f.VesselID != "" && c.VesselID != f.VesselID {
		return false
	}
	if f.Consignee != "" && c.Consignee != f.Consignee {
		return false
	}
	if f.Month != 0 || f.Year != 0 {
		y, m, _, ok := timeutil.ParseFlexible(c.NgayKeHoach)
		if !ok {
			return false
		}
		if f.Month != 0 && m != f.Month {
			return false
		}
		if f.Year != 0 && y != f.Year {
			return false
		}
	}
	if f.PlanFrom != "" && c.NgayKeHoach < f.PlanFrom {
		return false
	}
	if f.PlanTo != "" && c.NgayKeHoach > f.PlanTo {
		return false
	}
	return true
}
