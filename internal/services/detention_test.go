package services

import (
	"testing"
	"time"

	"portops-backend/internal/models"
)

func TestClassifyDetentionBoundaries(t *testing.T) {
	cfg := DetentionConfig{UrgentDays: 2, WarningDays: 5}
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		expiry string
		want   DetentionLevel
	}{
		{"2025-03-12", DetentionUrgent},  // exactly 2 days out
		{"2025-03-13", DetentionWarning}, // exactly 3
		{"2025-03-15", DetentionWarning}, // exactly 5
		{"2025-03-16", DetentionSafe},    // 6
		{"2025-03-10", DetentionUrgent},  // today
		{"2025-03-01", DetentionUrgent},  // already expired
		{"", DetentionSafe},              // unknown is not urgent
		{"not-a-date", DetentionSafe},
	}
	for _, tc := range cases {
		if got := ClassifyDetention(tc.expiry, cfg, now); got != tc.want {
			t.Errorf("ClassifyDetention(%q) = %s, want %s", tc.expiry, got, tc.want)
		}
	}
}

func TestClassifyDetentionPartialDayRoundsUp(t *testing.T) {
	cfg := DetentionConfig{UrgentDays: 2, WarningDays: 5}
	// mid-morning: 2025-03-15 midnight is 4.67 days away, counts as 5
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	if got := ClassifyDetention("2025-03-15", cfg, now); got != DetentionWarning {
		t.Errorf("partial day should ceil into the warning window, got %s", got)
	}
}

func TestIsExploitable(t *testing.T) {
	cases := []struct {
		tkNhaVC  string
		tkDnlOla string
		want     bool
	}{
		{"TK1", "TK2", true},
		{"", "TK2", false},
		{"TK1", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		c := &models.Container{TkNhaVC: tc.tkNhaVC, TkDnlOla: tc.tkDnlOla}
		if got := IsExploitable(c); got != tc.want {
			t.Errorf("IsExploitable(%q,%q) = %v, want %v", tc.tkNhaVC, tc.tkDnlOla, got, tc.want)
		}
	}
}

func TestComputeDashboard(t *testing.T) {
	cfg := DetentionConfig{UrgentDays: 2, WarningDays: 5}
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	containers := []*models.Container{
		{VesselID: "v1", NgayKeHoach: "2025-03-10", TkNhaVC: "A", TkDnlOla: "B", Status: models.StatusReady, DetExpiry: "2025-03-20"},
		{VesselID: "v1", NgayKeHoach: "2025-03-10", TkNhaVC: "A", TkDnlOla: "B", Status: models.StatusCompleted, DetExpiry: "2025-03-11"},
		{VesselID: "v1", NgayKeHoach: "2025-03-10", Status: models.StatusPending, DetExpiry: "2025-03-11"},
		{VesselID: "v2", NgayKeHoach: "2025-04-01", TkNhaVC: "A", TkDnlOla: "B", Status: models.StatusReady, DetExpiry: "2025-03-20"},
	}

	m := ComputeDashboard(containers, DashboardFilters{}, cfg, now)
	if m.TotalContainers != 4 || m.Ready != 2 || m.Completed != 1 {
		t.Errorf("metrics = %+v, want total=4 ready=2 completed=1", m)
	}
	// the completed one expiring tomorrow must not count as urgent
	if m.UrgentDetention != 1 {
		t.Errorf("urgentDetention = %d, want 1 (completed boxes excluded)", m.UrgentDetention)
	}

	m = ComputeDashboard(containers, DashboardFilters{VesselID: "v1"}, cfg, now)
	if m.TotalContainers != 3 {
		t.Errorf("vessel filter: total = %d, want 3", m.TotalContainers)
	}

	m = ComputeDashboard(containers, DashboardFilters{Month: 4, Year: 2025}, cfg, now)
	if m.TotalContainers != 1 {
		t.Errorf("month filter: total = %d, want 1", m.TotalContainers)
	}
}
