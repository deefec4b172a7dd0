package models

import "time"

type WorkOrderType string

const (
	WorkOrderLabor      WorkOrderType = "LABOR"
	WorkOrderMechanical WorkOrderType = "MECHANICAL"
)

type WorkOrderStatus string

const (
	WorkOrderSubmitted WorkOrderStatus = "SUBMITTED"
	WorkOrderApproved  WorkOrderStatus = "APPROVED"
	WorkOrderRejected  WorkOrderStatus = "REJECTED"
)

// WorkOrder is a dispatch instruction to a labor or mechanical crew (PCT),
// usually derived from an approved tally report.
type WorkOrder struct {
	ID           string          `json:"id"`
	Type         WorkOrderType   `json:"type"`
	VesselID     string          `json:"vesselId"`
	ContainerIDs StringList      `json:"containerIds"`
	ContainerNos StringList      `json:"containerNos"`
	TeamName     string          `json:"teamName"`
	WorkerNames  StringList      `json:"workerNames"`
	PeopleCount  int             `json:"peopleCount"`
	VehicleType  string          `json:"vehicleType"`
	VehicleNos   StringList      `json:"vehicleNos"`
	Shift        string          `json:"shift"`
	Date         string          `json:"date"` // display format DD/MM/YYYY
	Items        WorkOrderItems  `json:"items"`
	IsHoliday    bool            `json:"isHoliday"`
	IsWeekend    bool            `json:"isWeekend"`
	Status       WorkOrderStatus `json:"status"`
	TallyID      string          `json:"tallyId,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type WorkOrderItem struct {
	Method     string `json:"method"`
	CargoType  string `json:"cargoType"`
	Specs      string `json:"specs"`
	Volume     string `json:"volume"`
	Weight     string `json:"weight"` // free text, e.g. "12 tấn"
	ExtraLabor string `json:"extraLabor"`
	Notes      string `json:"notes"`
}
