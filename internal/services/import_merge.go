package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"portops-backend/internal/models"
	"portops-backend/internal/timeutil"
)

// RawRow is one spreadsheet row keyed by header cell. Values may be strings
// or numbers depending on the source (xlsx serials arrive as numbers).
type RawRow map[string]interface{}

// ImportDefaults are the plan-size placeholders applied when a row omits a
// value. These are policy, not physics; they come from config.
type ImportDefaults struct {
	Pkgs          int
	Weight        float64
	DropOff       string
	DetentionDays int
}

type ImportSummary struct {
	TotalPkgs   int     `json:"totalPkgs"`
	TotalWeight float64 `json:"totalWeight"`
}

// RowError reports a single skipped row. The batch continues past it.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

var containerNoPattern = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)
var idStripper = regexp.MustCompile(`[\s.\-]`)

// DetectUnitType classifies an identifier as a shipping container or a
// flatbed vehicle. Anything with a "/" is a vehicle plate; the ISO 6346
// four-letters-seven-digits shape is a container; everything else is
// treated as a vehicle.
func DetectUnitType(id string) models.UnitType {
	cleanID := strings.ToUpper(strings.TrimSpace(id))
	if cleanID == "" {
		return models.UnitVehicle
	}
	if strings.Contains(cleanID, "/") {
		return models.UnitVehicle
	}
	if containerNoPattern.MatchString(idStripper.ReplaceAllString(cleanID, "")) {
		return models.UnitContainer
	}
	return models.UnitVehicle
}

// header lookup is case-insensitive and ignores all whitespace, so
// "Số hiệu\nCont/Xe" in a merged xlsx header still matches.
var headerNormalizer = regexp.MustCompile(`\s+`)

func normalizeHeader(k string) string {
	return headerNormalizer.ReplaceAllString(strings.ToLower(k), "")
}

func findVal(row RawRow, potentialKeys ...string) (interface{}, bool) {
	for _, pk := range potentialKeys {
		want := normalizeHeader(pk)
		for k, v := range row {
			if normalizeHeader(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

func valString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		// xlsx numbers: render integers without a trailing .0
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}

// coalesceStr implements the merge rule for optional text fields: keep the
// existing value when present, else take the row value, else the default.
// Presence means a non-empty trimmed string.
func coalesceStr(existing string, row RawRow, keys []string, def string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	if v, ok := findVal(row, keys...); ok {
		if s := valString(v); s != "" {
			return s
		}
	}
	return def
}

// coalesceDate is coalesceStr with date normalization on the row value.
func coalesceDate(existing string, row RawRow, keys []string) string {
	if existing != "" {
		return existing
	}
	if v, ok := findVal(row, keys...); ok {
		if s := timeutil.NormalizeValue(v); s != "" {
			return s
		}
	}
	return ""
}

func rowInt(row RawRow, keys []string) (int, bool) {
	v, ok := findVal(row, keys...)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	}
	s := valString(v)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func rowFloat(row RawRow, keys []string) (float64, bool) {
	v, ok := findVal(row, keys...)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	s := strings.ReplaceAll(valString(v), ",", ".")
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}

// MergeImport merges raw import rows into the vessel's existing container
// set. Identity is (containerNo, planDate); rows matching an existing
// record enrich it without blanking previously captured fields, new rows
// get fresh ids and the configured defaults. Row failures are collected
// and skipped, never fatal for the batch.
func MergeImport(rows []RawRow, vesselID string, existing []*models.Container, defaults ImportDefaults, now time.Time) ([]*models.Container, ImportSummary, []RowError) {
	containerMap := make(map[string]*models.Container)
	var order []string

	// seed only with the target vessel's containers
	for _, c := range existing {
		if c.VesselID != vesselID {
			continue
		}
		key := c.IdentityKey()
		if _, seen := containerMap[key]; !seen {
			order = append(order, key)
		}
		containerMap[key] = c
	}

	var rowErrors []RowError
	for i, row := range rows {
		if err := mergeRow(row, vesselID, containerMap, &order, defaults, now); err != nil {
			rowErrors = append(rowErrors, RowError{Row: i + 1, Error: err.Error()})
		}
	}

	containers := make([]*models.Container, 0, len(order))
	totalPkgs := 0
	totalWeight := decimal.Zero
	for _, key := range order {
		c := containerMap[key]
		containers = append(containers, c)
		totalPkgs += c.Pkgs
		totalWeight = totalWeight.Add(decimal.NewFromFloat(c.Weight))
	}

	summary := ImportSummary{TotalPkgs: totalPkgs, TotalWeight: totalWeight.InexactFloat64()}
	return containers, summary, rowErrors
}

func mergeRow(row RawRow, vesselID string, containerMap map[string]*models.Container, order *[]string, defaults ImportDefaults, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row processing failed: %v", r)
		}
	}()

	if row == nil {
		return nil
	}

	rawNo, _ := findVal(row, "Số hiệu Cont/Xe", "Số hiệu Cont", "containerNo", "Container Number", "Số Cont")
	containerNo := valString(rawNo)
	if containerNo == "" || containerNo == "undefined" {
		return nil
	}

	planDateRaw, _ := findVal(row, "Ngày Kế hoạch", "ngayKeHoach", "Plan Date", "Ngày")
	planDate := timeutil.NormalizeValue(planDateRaw)
	if planDate == "" {
		planDate = now.Format(timeutil.DateLayout)
	}

	key := containerNo + "_" + planDate
	existing := containerMap[key]

	unitType := DetectUnitType(containerNo)
	c := &models.Container{
		ID:          models.NewID(),
		VesselID:    vesselID, // always merge into the target vessel scope
		UnitType:    unitType,
		ContainerNo: containerNo,
		NgayKeHoach: planDate,
		Status:      models.StatusPending,
	}
	if existing != nil {
		c.ID = existing.ID
		c.UnitType = existing.UnitType
		c.Status = existing.Status
		// approval state and operator notes are never touched by imports
		c.TallyApproved = existing.TallyApproved
		c.WorkOrderApproved = existing.WorkOrderApproved
		c.Remarks = existing.Remarks
		c.WorkerNames = existing.WorkerNames
		c.LastUrgedAt = existing.LastUrgedAt
	}

	get := func(existingVal string, def string, keys ...string) string {
		return coalesceStr(existingVal, row, keys, def)
	}
	getDate := func(existingVal string, keys ...string) string {
		return coalesceDate(existingVal, row, keys)
	}
	ex := func(f func(*models.Container) string) string {
		if existing == nil {
			return ""
		}
		return f(existing)
	}

	defaultSize := "40'HC"
	if unitType == models.UnitVehicle {
		defaultSize = "Xe thớt"
	}
	c.Size = get(ex(func(e *models.Container) string { return e.Size }), defaultSize, "Kích cỡ", "size", "Size")
	c.SealNo = get(ex(func(e *models.Container) string { return e.SealNo }), "", "Số Seal", "Seal No", "sealNo")
	c.TkNhaVC = get(ex(func(e *models.Container) string { return e.TkNhaVC }), "",
		"Số TK Nhà VC", "tkNhaVC", "Tờ khai", "Số tờ khai", "Số TK", "Customs No")
	c.NgayTkNhaVC = getDate(ex(func(e *models.Container) string { return e.NgayTkNhaVC }),
		"Ngày TK Nhà VC", "ngayTkNhaVC", "Ngày tờ khai", "Ngày TK", "Customs Date")
	c.TkDnlOla = get(ex(func(e *models.Container) string { return e.TkDnlOla }), "",
		"Số TK DNL", "tkDnlOla", "Số TK DNL/OLA", "Tờ khai DNL")
	c.NgayTkDnl = getDate(ex(func(e *models.Container) string { return e.NgayTkDnl }),
		"Ngày TK DNL", "ngayTkDnl", "Ngày TK DNL/OLA", "Ngày tờ khai DNL")
	c.BillNo = get(ex(func(e *models.Container) string { return e.BillNo }), "", "Bill No", "billNo", "Vận đơn")
	c.Vendor = get(ex(func(e *models.Container) string { return e.Vendor }), "", "Vendor", "vendor")
	c.Consignee = get(ex(func(e *models.Container) string { return e.Consignee }), "N/A",
		"Chủ hàng", "Consignee", "consignee", "Khách hàng", "Customer")
	c.Carrier = get(ex(func(e *models.Container) string { return e.Carrier }), "N/A",
		"Hãng tàu", "carrier", "Carrier")
	c.NoiHaRong = get(ex(func(e *models.Container) string { return e.NoiHaRong }), defaults.DropOff,
		"Nơi hạ rỗng", "noiHaRong", "Empty Return")

	// Numerics: an existing record keeps its value, zero included, so a
	// legitimate pkgs=0 survives a re-import.
	if existing != nil {
		c.Pkgs = existing.Pkgs
		c.Weight = existing.Weight
	} else {
		c.Pkgs = defaults.Pkgs
		c.Weight = defaults.Weight
		if n, ok := rowInt(row, []string{"Số kiện", "pkgs", "Package"}); ok {
			c.Pkgs = n
		}
		if f, ok := rowFloat(row, []string{"Số tấn", "weight", "Weight"}); ok {
			c.Weight = f
		}
	}

	// DET expiry prefers the row value over the stored one, falling back
	// to now + the configured detention window
	if v, ok := findVal(row, "Hạn DET", "detExpiry", "DET"); ok {
		if s := timeutil.NormalizeValue(v); s != "" {
			c.DetExpiry = s
		}
	}
	if c.DetExpiry == "" {
		c.DetExpiry = ex(func(e *models.Container) string { return e.DetExpiry })
	}
	if c.DetExpiry == "" {
		c.DetExpiry = now.AddDate(0, 0, defaults.DetentionDays).Format(timeutil.DateLayout)
	}

	// Auto-advance: complete customs documentation promotes PENDING to
	// READY. COMPLETED and IN_PROGRESS are never touched here.
	if c.TkNhaVC != "" && c.TkDnlOla != "" && c.Status == models.StatusPending {
		c.Status = models.StatusReady
	}

	if existing == nil {
		*order = append(*order, key)
	}
	containerMap[key] = c
	return nil
}
