package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"portops-backend/internal/models"
	"portops-backend/internal/names"
)

// StatsFilter narrows a production aggregation. Zero values mean "all".
// Names is an allow-list checked against the resolved person name.
type StatsFilter struct {
	Month    int
	Year     int
	DateFrom string // ISO, inclusive
	DateTo   string // ISO, inclusive
	Names    []string
}

func (f StatsFilter) matchDate(y, m, d int) bool {
	if f.Month != 0 && m != f.Month {
		return false
	}
	if f.Year != 0 && y != f.Year {
		return false
	}
	if f.DateFrom != "" || f.DateTo != "" {
		iso := fmt.Sprintf("%04d-%02d-%02d", y, m, d)
		if f.DateFrom != "" && iso < f.DateFrom {
			return false
		}
		if f.DateTo != "" && iso > f.DateTo {
			return false
		}
	}
	return true
}

func (f StatsFilter) matchName(name string) bool {
	if len(f.Names) == 0 {
		return true
	}
	for _, allowed := range f.Names {
		if strings.TrimSpace(allowed) == name {
			return true
		}
	}
	return false
}

// ProductionRow is one aggregate line of a production statement. Shift
// counts are used for labor rows, weights for mechanical rows; the
// other triple stays zero.
type ProductionRow struct {
	Name      string `json:"name"`
	Vehicle   string `json:"vehicle,omitempty"`
	Date      string `json:"date"`
	Method    string `json:"method"`
	CargoType string `json:"cargoType"`

	NormalShifts  int `json:"normalShifts"`
	WeekendShifts int `json:"weekendShifts"`
	HolidayShifts int `json:"holidayShifts"`

	NormalWeight  float64 `json:"normalWeight"`
	WeekendWeight float64 `json:"weekendWeight"`
	HolidayWeight float64 `json:"holidayWeight"`

	normalW  decimal.Decimal
	weekendW decimal.Decimal
	holidayW decimal.Decimal
}

// ProductionTotals is the reduction over all rows; per bucket it always
// equals the sum of the row values.
type ProductionTotals struct {
	NormalShifts  int     `json:"normalShifts"`
	WeekendShifts int     `json:"weekendShifts"`
	HolidayShifts int     `json:"holidayShifts"`
	NormalWeight  float64 `json:"normalWeight"`
	WeekendWeight float64 `json:"weekendWeight"`
	HolidayWeight float64 `json:"holidayWeight"`
}

type dayBucket int

const (
	bucketNormal dayBucket = iota
	bucketWeekend
	bucketHoliday
)

// holiday wins over weekend when both flags are set
func bucketFor(order *models.WorkOrder) dayBucket {
	if order.IsHoliday {
		return bucketHoliday
	}
	if order.IsWeekend {
		return bucketWeekend
	}
	return bucketNormal
}

func firstItemMethodCargo(order *models.WorkOrder) (method, cargoType string) {
	method, cargoType = "N/A", "Giấy"
	if len(order.Items) > 0 {
		if m := strings.TrimSpace(order.Items[0].Method); m != "" {
			method = m
		}
		if ct := strings.TrimSpace(order.Items[0].CargoType); ct != "" {
			cargoType = ct
		}
	}
	return method, cargoType
}

type productionAccumulator struct {
	rows  map[string]*ProductionRow
	order []string
}

func newProductionAccumulator() *productionAccumulator {
	return &productionAccumulator{rows: make(map[string]*ProductionRow)}
}

func (a *productionAccumulator) row(key string, seed ProductionRow) *ProductionRow {
	if r, ok := a.rows[key]; ok {
		return r
	}
	r := seed
	a.rows[key] = &r
	a.order = append(a.order, key)
	return &r
}

func (a *productionAccumulator) finish() ([]ProductionRow, ProductionTotals) {
	rows := make([]ProductionRow, 0, len(a.order))
	var totals ProductionTotals
	totalN, totalWe, totalH := decimal.Zero, decimal.Zero, decimal.Zero
	for _, key := range a.order {
		r := a.rows[key]
		r.NormalWeight = r.normalW.InexactFloat64()
		r.WeekendWeight = r.weekendW.InexactFloat64()
		r.HolidayWeight = r.holidayW.InexactFloat64()
		rows = append(rows, *r)

		totals.NormalShifts += r.NormalShifts
		totals.WeekendShifts += r.WeekendShifts
		totals.HolidayShifts += r.HolidayShifts
		totalN = totalN.Add(r.normalW)
		totalWe = totalWe.Add(r.weekendW)
		totalH = totalH.Add(r.holidayW)
	}
	totals.NormalWeight = totalN.InexactFloat64()
	totals.WeekendWeight = totalWe.InexactFloat64()
	totals.HolidayWeight = totalH.InexactFloat64()
	return rows, totals
}

// AggregateWorker builds the labor production statement: each LABOR work
// order contributes one shift, in the order's day-type bucket, to every
// person named on it.
func AggregateWorker(workOrders []*models.WorkOrder, filter StatsFilter) ([]ProductionRow, ProductionTotals) {
	acc := newProductionAccumulator()
	for _, order := range workOrders {
		if order.Type != models.WorkOrderLabor {
			continue
		}
		y, m, d, ok := parseOrderDate(order.Date)
		if !ok || !filter.matchDate(y, m, d) {
			continue
		}
		bucket := bucketFor(order)
		method, cargoType := firstItemMethodCargo(order)
		for _, person := range names.Resolve(order.WorkerNames, order.TeamName) {
			if !filter.matchName(person) {
				continue
			}
			key := person + "-" + order.Date + "-" + method + "-" + cargoType
			row := acc.row(key, ProductionRow{
				Name:      person,
				Date:      order.Date,
				Method:    method,
				CargoType: cargoType,
			})
			switch bucket {
			case bucketHoliday:
				row.HolidayShifts++
			case bucketWeekend:
				row.WeekendShifts++
			default:
				row.NormalShifts++
			}
		}
	}
	return acc.finish()
}

// AggregateMechanical builds the mechanical production statement. The
// order's total handled weight comes from the referenced containers,
// falling back to the order's own item weight strings, and is split
// evenly across the entities (people, else vehicles, else the team).
func AggregateMechanical(workOrders []*models.WorkOrder, containers []*models.Container, filter StatsFilter) ([]ProductionRow, ProductionTotals) {
	weightByNo := make(map[string]float64, len(containers))
	for _, c := range containers {
		weightByNo[c.ContainerNo] = c.Weight
	}

	acc := newProductionAccumulator()
	for _, order := range workOrders {
		if order.Type != models.WorkOrderMechanical {
			continue
		}
		y, m, d, ok := parseOrderDate(order.Date)
		if !ok || !filter.matchDate(y, m, d) {
			continue
		}
		bucket := bucketFor(order)
		method, cargoType := firstItemMethodCargo(order)

		total := decimal.Zero
		for _, no := range order.ContainerNos {
			if w, found := weightByNo[no]; found {
				total = total.Add(decimal.NewFromFloat(w))
			}
		}
		if total.IsZero() {
			for _, item := range order.Items {
				total = total.Add(parseWeightText(item.Weight))
			}
		}

		// fallback chain: named people, else vehicles, else the team itself
		people := names.Split(order.WorkerNames)
		usingPeople := len(people) > 0
		entities := people
		if len(entities) == 0 {
			entities = order.VehicleNos
		}
		if len(entities) == 0 {
			entities = []string{order.TeamName}
		}

		count := len(entities)
		if count < 1 {
			count = 1
		}
		perEntity := total.Div(decimal.NewFromInt(int64(count)))

		joinedVehicles := strings.Join(order.VehicleNos, ", ")
		for i, entity := range entities {
			name := strings.TrimSpace(entity)
			if name == "" {
				continue
			}
			if !filter.matchName(name) {
				continue
			}
			vehicle := joinedVehicles
			if usingPeople {
				if len(order.VehicleNos) == len(people) {
					vehicle = order.VehicleNos[i]
				}
			} else if len(order.VehicleNos) > 0 {
				// entities are the vehicles themselves
				vehicle = name
			}
			key := name + "-" + vehicle + "-" + order.Date + "-" + method + "-" + cargoType
			row := acc.row(key, ProductionRow{
				Name:      name,
				Vehicle:   vehicle,
				Date:      order.Date,
				Method:    method,
				CargoType: cargoType,
			})
			switch bucket {
			case bucketHoliday:
				row.holidayW = row.holidayW.Add(perEntity)
			case bucketWeekend:
				row.weekendW = row.weekendW.Add(perEntity)
			default:
				row.normalW = row.normalW.Add(perEntity)
			}
		}
	}
	return acc.finish()
}

// parseOrderDate accepts the two date shapes found on work orders,
// D/M/Y and Y-M-D, detected by separator.
func parseOrderDate(date string) (y, m, d int, ok bool) {
	date = strings.TrimSpace(date)
	var parts []string
	switch {
	case strings.Contains(date, "/"):
		parts = strings.Split(date, "/")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		d, m, y = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
	case strings.Contains(date, "-"):
		parts = strings.Split(date, "-")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		y, m, d = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
	default:
		return 0, 0, 0, false
	}
	if y < 100 {
		y += 2000
	}
	if m < 1 || m > 12 || d < 1 || d > 31 || y == 0 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// parseWeightText pulls the number out of a free-text weight like
// "12 tấn" or "8,5t". Unparseable text counts as zero.
func parseWeightText(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s[:end])
	if err != nil {
		return decimal.Zero
	}
	return d
}
