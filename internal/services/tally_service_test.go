package services

import (
	"fmt"
	"testing"

	"portops-backend/internal/models"
)

func TestNumberReportsStability(t *testing.T) {
	vessels := map[string]*models.Vessel{
		"v1": {ID: "v1", VesselName: "MV OCEAN STAR 05"},
	}
	reports := []*models.TallyReport{
		{ID: "r300", VesselID: "v1", CreatedAt: 300},
		{ID: "r100", VesselID: "v1", CreatedAt: 100},
		{ID: "r200", VesselID: "v1", CreatedAt: 200},
	}

	numbered := NumberReports(reports, vessels)
	if len(numbered) != 3 {
		t.Fatalf("expected 3 numbered reports, got %d", len(numbered))
	}

	// display order is newest first, numbers stay tied to creation order
	wantOrder := []struct {
		id    string
		count int
	}{
		{"r300", 3},
		{"r200", 2},
		{"r100", 1},
	}
	for i, want := range wantOrder {
		got := numbered[i]
		if got.ID != want.id || got.ReportCount != want.count {
			t.Errorf("position %d: got %s/#%d, want %s/#%d", i, got.ID, got.ReportCount, want.id, want.count)
		}
	}
	if numbered[2].ReportNo != "001 - 05" {
		t.Errorf("reportNo = %q, want %q", numbered[2].ReportNo, "001 - 05")
	}

	// input order must not matter
	shuffled := []*models.TallyReport{reports[2], reports[0], reports[1]}
	renumbered := NumberReports(shuffled, vessels)
	for _, nr := range renumbered {
		var want int
		switch nr.ID {
		case "r100":
			want = 1
		case "r200":
			want = 2
		case "r300":
			want = 3
		}
		if nr.ReportCount != want {
			t.Errorf("report %s renumbered to %d, want %d", nr.ID, nr.ReportCount, want)
		}
	}
}

func TestBuildGroupsConsigneePriority(t *testing.T) {
	vessels := []*models.Vessel{{ID: "v1", VesselName: "MV STAR 05", Consignee: "VesselOwner"}}
	containers := []*models.Container{
		{ID: "c1", ContainerNo: "MSKU1234567", VesselID: "v1", Size: "40'HC", UnitType: models.UnitContainer, Consignee: "BoxOwner", TkDnlOla: "TK99"},
	}
	item := models.TallyItem{ContID: "c1", ContNo: "MSKU1234567", ActualUnits: 16}

	cases := []struct {
		name  string
		owner string
		contNo string
		want  string
	}{
		{"report owner wins", "ReportOwner", "MSKU1234567", "ReportOwner"},
		{"container consignee next", "", "MSKU1234567", "BoxOwner"},
		{"vessel consignee last", "", "NOMATCH0000", "VesselOwner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := item
			it.ContNo = tc.contNo
			reports := []*models.TallyReport{{
				ID: "r1", VesselID: "v1", Owner: tc.owner, WorkDate: "2025-03-10",
				Items: models.TallyItems{it}, CreatedAt: 1,
			}}
			groups := BuildGroups(reports, vessels, containers)
			if len(groups) != 1 {
				t.Fatalf("expected 1 group, got %d", len(groups))
			}
			if groups[0].Consignee != tc.want {
				t.Errorf("consignee = %q, want %q", groups[0].Consignee, tc.want)
			}
		})
	}
}

func TestBuildGroupsEnrichment(t *testing.T) {
	vessels := []*models.Vessel{{ID: "v1", VesselName: "MV STAR 05"}}
	containers := []*models.Container{
		{ID: "c1", ContainerNo: "MSKU1234567", Size: "40'HC", UnitType: models.UnitContainer, TkDnlOla: "TK99", SealNo: "S1"},
	}
	reports := []*models.TallyReport{{
		ID: "r1", VesselID: "v1", WorkDate: "10/03/2025", CreatedAt: 1,
		Items: models.TallyItems{{ContNo: "MSKU1234567", ActualUnits: 16, ActualWeight: 28.8}},
	}}

	groups := BuildGroups(reports, vessels, containers)
	g := groups[0]
	if g.Day != 10 || g.Month != 3 || g.Year != 2025 {
		t.Errorf("workDate parsed as %d/%d/%d, want 10/3/2025", g.Day, g.Month, g.Year)
	}
	if len(g.Containers) != 1 {
		t.Fatalf("expected 1 enriched container, got %d", len(g.Containers))
	}
	gc := g.Containers[0]
	if gc.Size != "40'HC" || gc.UnitType != string(models.UnitContainer) || gc.TkDnlOla != "TK99" {
		t.Errorf("enrichment missing: %+v", gc)
	}
	if gc.SealNo != "S1" {
		t.Errorf("sealNo not backfilled from container: %q", gc.SealNo)
	}
}

func TestPaginateGroups(t *testing.T) {
	g := ReportGroup{ReportNo: "001 - 05"}
	for i := 0; i < 32; i++ {
		g.Containers = append(g.Containers, GroupContainer{ContNo: fmt.Sprintf("MSKU%07d", i)})
	}

	pages := PaginateGroups([]ReportGroup{g})
	if len(pages) != 3 {
		t.Fatalf("32 rows at 15/page should give 3 pages, got %d", len(pages))
	}
	if len(pages[0].Rows) != 15 || len(pages[1].Rows) != 15 || len(pages[2].Rows) != 2 {
		t.Errorf("page sizes = %d/%d/%d, want 15/15/2", len(pages[0].Rows), len(pages[1].Rows), len(pages[2].Rows))
	}
	if pages[1].Header != "001 - 05 (2/3)" {
		t.Errorf("page 2 header = %q, want %q", pages[1].Header, "001 - 05 (2/3)")
	}

	single := ReportGroup{ReportNo: "002 - 05", Containers: []GroupContainer{{ContNo: "X"}}}
	pages = PaginateGroups([]ReportGroup{single})
	if len(pages) != 1 || pages[0].Header != "002 - 05" {
		t.Errorf("single-page group must not carry a page suffix: %q", pages[0].Header)
	}

	empty := ReportGroup{ReportNo: "003 - 05"}
	pages = PaginateGroups([]ReportGroup{empty})
	if len(pages) != 1 || len(pages[0].Rows) != 0 {
		t.Errorf("empty group should still print one blank page, got %d pages", len(pages))
	}
}

func TestExploitabilityGateDoesNotMutate(t *testing.T) {
	blocked := &models.Container{ID: "c1", ContainerNo: "MSKU1234567", TkNhaVC: "", TkDnlOla: "X"}
	if IsExploitable(blocked) {
		t.Fatal("container missing tkNhaVC must not be exploitable")
	}

	report := &models.TallyReport{ID: "r1", Items: models.TallyItems{{ContNo: "OLDU0000001"}}}
	before := len(report.Items)

	// the gate check precedes any mutation; a rejection leaves the
	// item list exactly as it was
	if !IsExploitable(blocked) {
		// rejected: nothing appended
	} else {
		report.Items = append(report.Items, models.TallyItem{ContNo: blocked.ContainerNo})
	}
	if len(report.Items) != before {
		t.Errorf("rejected container mutated the item list: %d items, want %d", len(report.Items), before)
	}
}
