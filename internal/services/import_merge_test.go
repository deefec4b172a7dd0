package services

import (
	"testing"
	"time"

	"portops-backend/internal/models"
)

var testDefaults = ImportDefaults{Pkgs: 16, Weight: 28.8, DropOff: "TIEN SA", DetentionDays: 14}

func testNow() time.Time {
	return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
}

func TestDetectUnitType(t *testing.T) {
	cases := []struct {
		id   string
		want models.UnitType
	}{
		{"MSKU1234567", models.UnitContainer},
		{"msku 123-45.67", models.UnitContainer},
		{"43C-123.45", models.UnitVehicle},
		{"43C/12345", models.UnitVehicle},
		{"ABC1234567", models.UnitVehicle}, // 3 letters, not ISO shape
		{"", models.UnitVehicle},
	}
	for _, tc := range cases {
		if got := DetectUnitType(tc.id); got != tc.want {
			t.Errorf("DetectUnitType(%q) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestMergeImportIdentity(t *testing.T) {
	rows := []RawRow{
		{"Số hiệu Cont/Xe": "MSKU1234567", "Ngày Kế hoạch": "10/03/2025", "Số Seal": ""},
	}
	first, _, errs := MergeImport(rows, "v1", nil, testDefaults, testNow())
	if len(errs) != 0 {
		t.Fatalf("unexpected row errors: %v", errs)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 container, got %d", len(first))
	}

	// second import, same identity, now with a seal
	rows2 := []RawRow{
		{"Số hiệu Cont/Xe": "MSKU1234567", "Ngày Kế hoạch": "10/03/2025", "Số Seal": "SEAL99"},
	}
	second, _, _ := MergeImport(rows2, "v1", first, testDefaults, testNow())
	if len(second) != 1 {
		t.Fatalf("re-import of same identity duplicated: %d containers", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Error("re-import of same identity must keep the record id")
	}
	if second[0].SealNo != "SEAL99" {
		t.Errorf("sealNo = %q, want filled from new row", second[0].SealNo)
	}

	// third import, same containerNo, new plan date: distinct record
	rows3 := []RawRow{
		{"Số hiệu Cont/Xe": "MSKU1234567", "Ngày Kế hoạch": "11/03/2025"},
	}
	third, _, _ := MergeImport(rows3, "v1", second, testDefaults, testNow())
	if len(third) != 2 {
		t.Fatalf("new plan date should create a second container, got %d", len(third))
	}
	if third[0].ID == third[1].ID {
		t.Error("distinct identities must have distinct ids")
	}
}

func TestMergeImportKeepsExistingFields(t *testing.T) {
	existing := []*models.Container{{
		ID: "keep", VesselID: "v1", ContainerNo: "MSKU1234567", NgayKeHoach: "2025-03-10",
		SealNo: "OLD", Pkgs: 0, Weight: 0, Remarks: "operator note",
		TallyApproved: true, Status: models.StatusCompleted,
		WorkerNames: models.StringList{"A"},
	}}
	rows := []RawRow{{
		"Số hiệu Cont/Xe": "MSKU1234567",
		"Ngày Kế hoạch":   "10/03/2025",
		"Số Seal":         "NEW",
		"Số kiện":         float64(99),
		"Số tấn":          float64(99),
	}}

	merged, _, _ := MergeImport(rows, "v1", existing, testDefaults, testNow())
	c := merged[0]
	if c.SealNo != "OLD" {
		t.Errorf("existing sealNo overwritten: %q", c.SealNo)
	}
	if c.Pkgs != 0 || c.Weight != 0 {
		t.Errorf("existing zero numerics must survive re-import, got pkgs=%d weight=%v", c.Pkgs, c.Weight)
	}
	if !c.TallyApproved || c.Remarks != "operator note" || len(c.WorkerNames) != 1 {
		t.Error("approval state and notes must be immune to imports")
	}
	if c.Status != models.StatusCompleted {
		t.Errorf("COMPLETED must stay COMPLETED through re-import, got %s", c.Status)
	}
}

func TestMergeImportDefaults(t *testing.T) {
	rows := []RawRow{
		{"Số hiệu Cont/Xe": "MSKU1234567", "Ngày Kế hoạch": "10/03/2025"},
		{"Số hiệu Cont/Xe": "43C-123.45", "Ngày Kế hoạch": "10/03/2025"},
	}
	merged, summary, _ := MergeImport(rows, "v1", nil, testDefaults, testNow())
	if len(merged) != 2 {
		t.Fatalf("expected 2 containers, got %d", len(merged))
	}

	box, truck := merged[0], merged[1]
	if box.Size != "40'HC" {
		t.Errorf("container default size = %q", box.Size)
	}
	if truck.Size != "Xe thớt" {
		t.Errorf("vehicle default size = %q", truck.Size)
	}
	if box.Pkgs != 16 || box.Weight != 28.8 {
		t.Errorf("defaults not applied: pkgs=%d weight=%v", box.Pkgs, box.Weight)
	}
	if box.Consignee != "N/A" || box.Carrier != "N/A" || box.NoiHaRong != "TIEN SA" {
		t.Errorf("placeholder defaults wrong: %q/%q/%q", box.Consignee, box.Carrier, box.NoiHaRong)
	}
	if want := "2025-03-24"; box.DetExpiry != want {
		t.Errorf("detExpiry = %q, want now+14d = %q", box.DetExpiry, want)
	}
	if summary.TotalPkgs != 32 {
		t.Errorf("summary pkgs = %d, want 32", summary.TotalPkgs)
	}
	if summary.TotalWeight != 57.6 {
		t.Errorf("summary weight = %v, want 57.6", summary.TotalWeight)
	}
}

func TestMergeImportAutoAdvanceIdempotent(t *testing.T) {
	rows := []RawRow{{
		"Số hiệu Cont/Xe": "MSKU1234567",
		"Ngày Kế hoạch":   "10/03/2025",
		"Số TK Nhà VC":    "TK1",
		"Số TK DNL":       "TK2",
	}}
	merged, _, _ := MergeImport(rows, "v1", nil, testDefaults, testNow())
	if merged[0].Status != models.StatusReady {
		t.Fatalf("complete customs docs should promote PENDING to READY, got %s", merged[0].Status)
	}

	again, _, _ := MergeImport(rows, "v1", merged, testDefaults, testNow())
	if again[0].Status != models.StatusReady {
		t.Errorf("re-import reverted READY to %s", again[0].Status)
	}

	merged[0].Status = models.StatusInProgress
	inProgress, _, _ := MergeImport(rows, "v1", merged, testDefaults, testNow())
	if inProgress[0].Status != models.StatusInProgress {
		t.Errorf("IN_PROGRESS must not be touched by auto-advance, got %s", inProgress[0].Status)
	}
}

func TestMergeImportDetExpiryPrefersRow(t *testing.T) {
	existing := []*models.Container{{
		ID: "c1", VesselID: "v1", ContainerNo: "MSKU1234567", NgayKeHoach: "2025-03-10",
		DetExpiry: "2025-04-01",
	}}
	rows := []RawRow{{
		"Số hiệu Cont/Xe": "MSKU1234567",
		"Ngày Kế hoạch":   "10/03/2025",
		"Hạn DET":         "20/03/2025",
	}}
	merged, _, _ := MergeImport(rows, "v1", existing, testDefaults, testNow())
	if merged[0].DetExpiry != "2025-03-20" {
		t.Errorf("detExpiry = %q, row value must win over stored", merged[0].DetExpiry)
	}
}

func TestMergeImportHeaderTolerance(t *testing.T) {
	// merged xlsx headers often carry line breaks and odd casing
	rows := []RawRow{{
		"số hiệu\ncont/xe": "MSKU1234567",
		"NGÀY KẾ HOẠCH":    float64(45726), // 2025-03-10 as a serial
	}}
	merged, _, _ := MergeImport(rows, "v1", nil, testDefaults, testNow())
	if len(merged) != 1 {
		t.Fatalf("header variants not matched, got %d containers", len(merged))
	}
	if merged[0].NgayKeHoach != "2025-03-10" {
		t.Errorf("serial plan date = %q, want 2025-03-10", merged[0].NgayKeHoach)
	}
}

func TestMergeImportSkipsBlankRows(t *testing.T) {
	rows := []RawRow{
		{"Số hiệu Cont/Xe": ""},
		{"Số hiệu Cont/Xe": "undefined"},
		nil,
		{"Số hiệu Cont/Xe": "MSKU1234567", "Ngày Kế hoạch": "10/03/2025"},
	}
	merged, _, errs := MergeImport(rows, "v1", nil, testDefaults, testNow())
	if len(merged) != 1 {
		t.Errorf("blank rows must be skipped, got %d containers", len(merged))
	}
	if len(errs) != 0 {
		t.Errorf("blank rows are skips, not errors: %v", errs)
	}
}
