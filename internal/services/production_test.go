package services

import (
	"testing"

	"portops-backend/internal/models"
)

func laborOrder(date string, workers []string, weekend, holiday bool) *models.WorkOrder {
	return &models.WorkOrder{
		ID:          models.NewID(),
		Type:        models.WorkOrderLabor,
		Date:        date,
		WorkerNames: workers,
		IsWeekend:   weekend,
		IsHoliday:   holiday,
	}
}

func TestAggregateWorkerShiftPerPerson(t *testing.T) {
	orders := []*models.WorkOrder{
		laborOrder("10/01/2025", []string{"A", "B"}, false, false),
		laborOrder("10/01/2025", []string{"A", "B"}, true, false),
	}

	rows, totals := AggregateWorker(orders, StatsFilter{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.NormalShifts != 1 || r.WeekendShifts != 1 || r.HolidayShifts != 0 {
			t.Errorf("row %s: shifts = %d/%d/%d, want 1/1/0", r.Name, r.NormalShifts, r.WeekendShifts, r.HolidayShifts)
		}
	}
	if totals.NormalShifts != 2 || totals.WeekendShifts != 2 {
		t.Errorf("totals = %d normal, %d weekend, want 2/2", totals.NormalShifts, totals.WeekendShifts)
	}
}

func TestAggregateWorkerCommaPackedNames(t *testing.T) {
	orders := []*models.WorkOrder{
		laborOrder("05/02/2025", []string{"A, B ,C"}, false, false),
	}
	rows, totals := AggregateWorker(orders, StatsFilter{})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for comma-packed names, got %d", len(rows))
	}
	if totals.NormalShifts != 3 {
		t.Errorf("total normal shifts = %d, want 3", totals.NormalShifts)
	}
}

func TestAggregateWorkerHolidayBeatsWeekend(t *testing.T) {
	orders := []*models.WorkOrder{
		laborOrder("01/01/2025", []string{"A"}, true, true),
	}
	rows, _ := AggregateWorker(orders, StatsFilter{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].HolidayShifts != 1 || rows[0].WeekendShifts != 0 {
		t.Errorf("holiday+weekend order landed in shifts %d/%d/%d, want holiday only",
			rows[0].NormalShifts, rows[0].WeekendShifts, rows[0].HolidayShifts)
	}
}

func TestAggregateWorkerTeamFallback(t *testing.T) {
	order := laborOrder("05/02/2025", nil, false, false)
	order.TeamName = "Tổ 1, Tổ 2"
	rows, _ := AggregateWorker([]*models.WorkOrder{order}, StatsFilter{})
	if len(rows) != 2 {
		t.Fatalf("expected team-name fallback to yield 2 rows, got %d", len(rows))
	}
}

func TestAggregateWorkerFilters(t *testing.T) {
	orders := []*models.WorkOrder{
		laborOrder("10/01/2025", []string{"A", "B"}, false, false),
		laborOrder("10/02/2025", []string{"A"}, false, false),
		laborOrder("2025-01-20", []string{"A"}, false, false),
	}

	rows, totals := AggregateWorker(orders, StatsFilter{Month: 1, Year: 2025})
	if totals.NormalShifts != 3 {
		t.Errorf("january shifts = %d, want 3 (both date shapes)", totals.NormalShifts)
	}

	rows, totals = AggregateWorker(orders, StatsFilter{Names: []string{"B"}})
	if len(rows) != 1 || rows[0].Name != "B" || totals.NormalShifts != 1 {
		t.Errorf("allow-list filter: rows=%d totals=%d, want 1/1", len(rows), totals.NormalShifts)
	}

	_, totals = AggregateWorker(orders, StatsFilter{DateFrom: "2025-01-15", DateTo: "2025-01-31"})
	if totals.NormalShifts != 1 {
		t.Errorf("date-range shifts = %d, want 1", totals.NormalShifts)
	}
	_ = rows
}

func TestAggregateMechanicalEvenSplit(t *testing.T) {
	containers := []*models.Container{
		{ContainerNo: "MSKU1234567", Weight: 10},
		{ContainerNo: "TCLU7654321", Weight: 14},
	}
	order := &models.WorkOrder{
		ID:           models.NewID(),
		Type:         models.WorkOrderMechanical,
		Date:         "10/03/2025",
		ContainerNos: models.StringList{"MSKU1234567", "TCLU7654321"},
		VehicleNos:   models.StringList{"V1", "V2"},
	}

	rows, totals := AggregateMechanical([]*models.WorkOrder{order}, containers, StatsFilter{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (one per vehicle), got %d", len(rows))
	}
	for _, r := range rows {
		if r.NormalWeight != 12 {
			t.Errorf("row %s: normalWeight = %v, want 12", r.Name, r.NormalWeight)
		}
	}
	if totals.NormalWeight != 24 {
		t.Errorf("total normalWeight = %v, want 24", totals.NormalWeight)
	}
}

func TestAggregateMechanicalItemWeightFallback(t *testing.T) {
	order := &models.WorkOrder{
		ID:           models.NewID(),
		Type:         models.WorkOrderMechanical,
		Date:         "10/03/2025",
		ContainerNos: models.StringList{"UNKNOWN0000001"},
		WorkerNames:  models.StringList{"A"},
		Items: models.WorkOrderItems{
			{Weight: "12 tấn"},
			{Weight: "8,5 tấn"},
		},
	}

	rows, _ := AggregateMechanical([]*models.WorkOrder{order}, nil, StatsFilter{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].NormalWeight != 20.5 {
		t.Errorf("normalWeight = %v, want 20.5 from item weight text", rows[0].NormalWeight)
	}
}

func TestAggregateMechanicalVehiclePairing(t *testing.T) {
	containers := []*models.Container{{ContainerNo: "MSKU1234567", Weight: 30}}
	order := &models.WorkOrder{
		ID:           models.NewID(),
		Type:         models.WorkOrderMechanical,
		Date:         "10/03/2025",
		ContainerNos: models.StringList{"MSKU1234567"},
		WorkerNames:  models.StringList{"A", "B", "C"},
		VehicleNos:   models.StringList{"V1", "V2", "V3"},
	}

	rows, _ := AggregateMechanical([]*models.WorkOrder{order}, containers, StatsFilter{})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"V1", "V2", "V3"} {
		if rows[i].Vehicle != want {
			t.Errorf("row %d paired with vehicle %q, want %q", i, rows[i].Vehicle, want)
		}
		if rows[i].NormalWeight != 10 {
			t.Errorf("row %d weight = %v, want 10", i, rows[i].NormalWeight)
		}
	}
}

func TestAggregateMechanicalTeamFallback(t *testing.T) {
	containers := []*models.Container{{ContainerNo: "MSKU1234567", Weight: 18}}
	order := &models.WorkOrder{
		ID:           models.NewID(),
		Type:         models.WorkOrderMechanical,
		Date:         "10/03/2025",
		ContainerNos: models.StringList{"MSKU1234567"},
		TeamName:     "Đội cơ giới",
	}

	rows, _ := AggregateMechanical([]*models.WorkOrder{order}, containers, StatsFilter{})
	if len(rows) != 1 || rows[0].Name != "Đội cơ giới" {
		t.Fatalf("expected single team row, got %+v", rows)
	}
	if rows[0].NormalWeight != 18 {
		t.Errorf("team row weight = %v, want 18", rows[0].NormalWeight)
	}
}

func TestAggregateSkipsOtherType(t *testing.T) {
	orders := []*models.WorkOrder{
		laborOrder("10/01/2025", []string{"A"}, false, false),
		{Type: models.WorkOrderMechanical, Date: "10/01/2025", TeamName: "T"},
	}
	rows, _ := AggregateWorker(orders, StatsFilter{})
	if len(rows) != 1 {
		t.Errorf("worker aggregation picked up %d rows, want 1 (labor only)", len(rows))
	}
	mrows, _ := AggregateMechanical(orders, nil, StatsFilter{})
	if len(mrows) != 1 {
		t.Errorf("mechanical aggregation picked up %d rows, want 1", len(mrows))
	}
}
