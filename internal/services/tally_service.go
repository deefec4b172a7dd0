package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"portops-backend/internal/cache"
	"portops-backend/internal/metrics"
	"portops-backend/internal/models"
	"portops-backend/internal/names"
	"portops-backend/internal/repositories"
	"portops-backend/internal/timeutil"
	"portops-backend/internal/ws"
)

// TallyService owns report numbering, group reconstruction, the
// exploitability gate on item entry, and the approval side effect.
type TallyService struct {
	Reports    *repositories.TallyReportRepository
	Containers *repositories.ContainerRepository
	Vessels    *repositories.VesselRepository
	Hub        *ws.Hub
}

func NewTallyService(reports *repositories.TallyReportRepository, containers *repositories.ContainerRepository, vessels *repositories.VesselRepository, hub *ws.Hub) *TallyService {
	return &TallyService{Reports: reports, Containers: containers, Vessels: vessels, Hub: hub}
}

// NumberedReport pairs a report with its derived sequence number. The
// number is never stored; it is index+1 after sorting by createdAt
// ascending across the whole collection.
type NumberedReport struct {
	*models.TallyReport
	ReportCount int    `json:"reportCount"`
	ReportNo    string `json:"reportNo"`
}

// GroupContainer is a tally item enriched with the live container record.
type GroupContainer struct {
	ContID       string  `json:"contId"`
	ContNo       string  `json:"contNo"`
	Size         string  `json:"size"`
	UnitType     string  `json:"unitType"`
	TkDnlOla     string  `json:"tkDnlOla"`
	SealNo       string  `json:"sealNo"`
	ActualUnits  float64 `json:"actualUnits"`
	ActualWeight float64 `json:"actualWeight"`
	IsScratched  bool    `json:"isScratchedFloor"`
	TornUnits    float64 `json:"tornUnits"`
	Notes        string  `json:"notes"`
}

// ReportGroup is the printable view of one tally report.
type ReportGroup struct {
	ReportID    string           `json:"reportId"`
	ReportCount int              `json:"reportCount"`
	ReportNo    string           `json:"reportNo"`
	VesselName  string           `json:"vesselName"`
	Mode        string           `json:"mode"`
	Shift       string           `json:"shift"`
	Day         int              `json:"day"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	Consignee   string           `json:"consignee"`
	WorkerNames []string         `json:"workerNames"`
	Equipment   string           `json:"equipment"`
	IsApproved  bool             `json:"isApproved"`
	Status      string           `json:"status"`
	Containers  []GroupContainer `json:"containers"`
}

// PrintPage is one physical sheet of a report group.
type PrintPage struct {
	ReportGroup
	Header string           `json:"header"`
	Rows   []GroupContainer `json:"rows"`
	Page   int              `json:"page"`
	Pages  int              `json:"pages"`
}

const printRowsPerPage = 15

// vesselCode is the last whitespace-separated token of the vessel name,
// e.g. "MV OCEAN STAR 05" -> "05".
func vesselCode(vesselName string) string {
	fields := strings.Fields(vesselName)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// NumberReports assigns stable sequence numbers: sort ascending by
// createdAt, number from 1, then reverse for display (newest first).
// Renumbering never follows the display order.
func NumberReports(reports []*models.TallyReport, vessels map[string]*models.Vessel) []NumberedReport {
	sorted := make([]*models.TallyReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt < sorted[j].CreatedAt })

	numbered := make([]NumberedReport, len(sorted))
	for i, t := range sorted {
		code := ""
		if v := vessels[t.VesselID]; v != nil {
			code = vesselCode(v.VesselName)
		}
		numbered[i] = NumberedReport{
			TallyReport: t,
			ReportCount: i + 1,
			ReportNo:    fmt.Sprintf("%03d - %s", i+1, code),
		}
	}

	// newest first
	for i, j := 0, len(numbered)-1; i < j; i, j = i+1, j-1 {
		numbered[i], numbered[j] = numbered[j], numbered[i]
	}
	return numbered
}

// BuildGroups reconstructs the printable report groups from the live
// collections. Consignee resolution priority: the report's own owner,
// else the first matched container's consignee, else the vessel's.
func BuildGroups(reports []*models.TallyReport, vessels []*models.Vessel, containers []*models.Container) []ReportGroup {
	vesselByID := make(map[string]*models.Vessel, len(vessels))
	for _, v := range vessels {
		vesselByID[v.ID] = v
	}
	containerByNo := make(map[string]*models.Container, len(containers))
	for _, c := range containers {
		containerByNo[c.ContainerNo] = c
	}

	numbered := NumberReports(reports, vesselByID)
	groups := make([]ReportGroup, 0, len(numbered))
	for _, nr := range numbered {
		t := nr.TallyReport
		g := ReportGroup{
			ReportID:    t.ID,
			ReportCount: nr.ReportCount,
			ReportNo:    nr.ReportNo,
			Mode:        t.Mode,
			Shift:       t.Shift,
			Equipment:   t.Equipment,
			IsApproved:  t.IsApproved(),
			Status:      t.Status,
			WorkerNames: tallyPeople(t),
		}

		vessel := vesselByID[t.VesselID]
		if vessel != nil {
			g.VesselName = vessel.VesselName
		}

		g.Day, g.Month, g.Year = parseWorkDate(t.WorkDate)

		var firstMatched *models.Container
		for _, item := range t.Items {
			gc := GroupContainer{
				ContID:       item.ContID,
				ContNo:       item.ContNo,
				SealNo:       item.SealNo,
				ActualUnits:  item.ActualUnits,
				ActualWeight: item.ActualWeight,
				IsScratched:  item.IsScratchedFloor,
				TornUnits:    item.TornUnits,
				Notes:        item.Notes,
			}
			if c := containerByNo[item.ContNo]; c != nil {
				gc.Size = c.Size
				gc.UnitType = string(c.UnitType)
				gc.TkDnlOla = c.TkDnlOla
				if gc.SealNo == "" {
					gc.SealNo = c.SealNo
				}
				if firstMatched == nil {
					firstMatched = c
				}
			}
			g.Containers = append(g.Containers, gc)
		}

		switch {
		case strings.TrimSpace(t.Owner) != "":
			g.Consignee = t.Owner
		case firstMatched != nil && firstMatched.Consignee != "":
			g.Consignee = firstMatched.Consignee
		case vessel != nil:
			g.Consignee = vessel.Consignee
		}

		groups = append(groups, g)
	}
	return groups
}

// PaginateGroups chunks each group's container list into print pages of
// fixed size; multi-page groups repeat the header with a page suffix.
func PaginateGroups(groups []ReportGroup) []PrintPage {
	var pages []PrintPage
	for _, g := range groups {
		rows := g.Containers
		total := (len(rows) + printRowsPerPage - 1) / printRowsPerPage
		if total == 0 {
			total = 1
		}
		for p := 0; p < total; p++ {
			start := p * printRowsPerPage
			end := start + printRowsPerPage
			if end > len(rows) {
				end = len(rows)
			}
			header := g.ReportNo
			if total > 1 {
				header = fmt.Sprintf("%s (%d/%d)", g.ReportNo, p+1, total)
			}
			pages = append(pages, PrintPage{
				ReportGroup: g,
				Header:      header,
				Rows:        rows[start:end],
				Page:        p + 1,
				Pages:       total,
			})
		}
	}
	return pages
}

func parseWorkDate(workDate string) (day, month, year int) {
	y, m, d, ok := timeutil.ParseFlexible(workDate)
	if !ok {
		return 0, 0, 0
	}
	return d, m, y
}

func tallyPeople(t *models.TallyReport) []string {
	var entries []string
	if t.WorkerNames != "" {
		entries = append(entries, t.WorkerNames)
	}
	if t.MechanicalNames != "" {
		entries = append(entries, t.MechanicalNames)
	}
	return names.Split(entries)
}

// List returns all reports with derived numbers, newest first.
func (s *TallyService) List(ctx context.Context) ([]NumberedReport, error) {
	reports, err := s.Reports.List(ctx)
	if err != nil {
		return nil, err
	}
	vessels, err := s.Vessels.List(ctx)
	if err != nil {
		return nil, err
	}
	vesselByID := make(map[string]*models.Vessel, len(vessels))
	for _, v := range vessels {
		vesselByID[v.ID] = v
	}
	return NumberReports(reports, vesselByID), nil
}

// Groups rebuilds the report groups from the live collections.
func (s *TallyService) Groups(ctx context.Context) ([]ReportGroup, error) {
	reports, err := s.Reports.List(ctx)
	if err != nil {
		return nil, err
	}
	vessels, err := s.Vessels.List(ctx)
	if err != nil {
		return nil, err
	}
	containers, err := s.Containers.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildGroups(reports, vessels, containers), nil
}

// PrintPages returns the paginated print view of all groups.
func (s *TallyService) PrintPages(ctx context.Context) ([]PrintPage, error) {
	groups, err := s.Groups(ctx)
	if err != nil {
		return nil, err
	}
	return PaginateGroups(groups), nil
}

// AddItem appends a container to a report's item list after the
// exploitability gate. A rejected container leaves the report untouched.
func (s *TallyService) AddItem(ctx context.Context, reportID string, item models.TallyItem) (*models.TallyReport, error) {
	report, err := s.Reports.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("tally report %s: %w", reportID, err)
	}

	container, err := s.Containers.GetByNo(ctx, item.ContNo)
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", item.ContNo, err)
	}
	if !IsExploitable(container) {
		return nil, ErrContainerNotReleased
	}
	if container.Status == models.StatusCompleted {
		return nil, ErrContainerNotReleased
	}

	if item.ContID == "" {
		item.ContID = container.ID
	}
	report.Items = append(report.Items, item)
	if err := s.Reports.UpsertOne(ctx, report); err != nil {
		return nil, err
	}
	cache.InvalidateTallyCaches(ctx)
	return report, nil
}

// SaveOne upserts a single report, stamping createdAt on first save.
func (s *TallyService) SaveOne(ctx context.Context, t *models.TallyReport) error {
	if t.ID == "" {
		t.ID = models.NewID()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = timeutil.Now().UnixMilli()
	}
	if t.Status == "" {
		t.Status = models.TallyStatusDraft
	}
	if err := s.Reports.UpsertOne(ctx, t); err != nil {
		return err
	}
	cache.InvalidateTallyCaches(ctx)
	return nil
}

// ReplaceAll swaps the whole collection.
func (s *TallyService) ReplaceAll(ctx context.Context, reports []*models.TallyReport) error {
	for _, t := range reports {
		if t.ID == "" {
			t.ID = models.NewID()
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = timeutil.Now().UnixMilli()
		}
	}
	if err := s.Reports.ReplaceAll(ctx, reports); err != nil {
		return err
	}
	cache.InvalidateTallyCaches(ctx)
	return nil
}

// Approve marks the selected reports approved and completes their
// constituent containers in one transaction.
func (s *TallyService) Approve(ctx context.Context, reportIDs []string) error {
	if len(reportIDs) == 0 {
		return ErrNoReportsSelected
	}
	reports, err := s.Reports.GetMany(ctx, reportIDs)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return ErrNoReportsSelected
	}

	var containerNos []string
	seen := make(map[string]bool)
	for _, t := range reports {
		for _, item := range t.Items {
			if item.ContNo == "" || seen[item.ContNo] {
				continue
			}
			seen[item.ContNo] = true
			containerNos = append(containerNos, item.ContNo)
		}
	}

	if err := s.Reports.ApproveWithContainers(ctx, reportIDs, containerNos); err != nil {
		return err
	}

	cache.InvalidateTallyCaches(ctx)
	cache.InvalidateContainerCaches(ctx)
	s.Hub.Broadcast(ws.Event{Type: "tally.approved"})
	metrics.TallyApprovalsTotal.Add(float64(len(reports)))
	log.Printf("[Tally] approved %d reports, completed %d containers", len(reports), len(containerNos))
	return nil
}
