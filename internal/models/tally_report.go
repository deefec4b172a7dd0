package models

// Tally modes
const (
	TallyModeImport = "NHAP"
	TallyModeExport = "XUAT"
)

// Tally report statuses: draft, pending review, approved
const (
	TallyStatusDraft    = "NHAP"
	TallyStatusPending  = "CHUA_DUYET"
	TallyStatusApproved = "DA_DUYET"
)

// TallyReport is an inspector's record of goods actually received/counted
// against containers, as opposed to the declared quantities. CreatedAt is
// epoch milliseconds and defines the report numbering order; the number
// itself is derived, never stored.
type TallyReport struct {
	ID              string     `json:"id"`
	VesselID        string     `json:"vesselId"`
	Mode            string     `json:"mode"`
	Shift           string     `json:"shift"` // '1'..'4'
	WorkDate        string     `json:"workDate"`
	Owner           string     `json:"owner,omitempty"`
	WorkerCount     int        `json:"workerCount"`
	WorkerNames     string     `json:"workerNames"` // free text, may be comma-joined
	MechanicalCount int        `json:"mechanicalCount"`
	MechanicalNames string     `json:"mechanicalNames"`
	Equipment       string     `json:"equipment"` // '+'-joined list
	VehicleNo       string     `json:"vehicleNo"`
	ShipNo          string     `json:"shipNo"`
	VehicleType     string     `json:"vehicleType"`
	Items           TallyItems `json:"items"`
	IsHoliday       bool       `json:"isHoliday"`
	IsWeekend       bool       `json:"isWeekend"`
	Status          string     `json:"status"`
	CreatedAt       int64      `json:"createdAt"` // epoch ms
	CreatedBy       string     `json:"createdBy"`
}

type TallyItem struct {
	ContID           string  `json:"contId"`
	ContNo           string  `json:"contNo"`
	CommodityType    string  `json:"commodityType"`
	SealNo           string  `json:"sealNo"`
	ActualUnits      float64 `json:"actualUnits"`
	ActualWeight     float64 `json:"actualWeight"`
	IsScratchedFloor bool    `json:"isScratchedFloor"`
	TornUnits        float64 `json:"tornUnits"`
	Notes            string  `json:"notes"`
}

// IsApproved reports whether the tally has been approved.
func (t *TallyReport) IsApproved() bool {
	return t.Status == TallyStatusApproved
}
