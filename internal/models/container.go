package models

import "time"

type UnitType string

const (
	UnitContainer UnitType = "CONTAINER"
	UnitVehicle   UnitType = "VEHICLE"
)

type ContainerStatus string

const (
	StatusPending    ContainerStatus = "PENDING"
	StatusReady      ContainerStatus = "READY"
	StatusInProgress ContainerStatus = "IN_PROGRESS"
	StatusCompleted  ContainerStatus = "COMPLETED"
)

// Container is one unit of cargo on a vessel plan: a shipping container or
// a flatbed vehicle. Identity is (containerNo, ngayKeHoach) — the same
// container number may recur on a later plan date as a re-import and must
// not collide with the earlier record.
type Container struct {
	ID                string          `json:"id"`
	VesselID          string          `json:"vesselId"`
	UnitType          UnitType        `json:"unitType"`
	ContainerNo       string          `json:"containerNo"`
	Size              string          `json:"size"`
	SealNo            string          `json:"sealNo"`
	Consignee         string          `json:"consignee"`
	Carrier           string          `json:"carrier"`
	Pkgs              int             `json:"pkgs"`
	Weight            float64         `json:"weight"`
	BillNo            string          `json:"billNo"`
	Vendor            string          `json:"vendor"`
	DetExpiry         string          `json:"detExpiry"`
	TkNhaVC           string          `json:"tkNhaVC"`
	NgayTkNhaVC       string          `json:"ngayTkNhaVC"`
	TkDnlOla          string          `json:"tkDnlOla"`
	NgayTkDnl         string          `json:"ngayTkDnl"`
	NgayKeHoach       string          `json:"ngayKeHoach"`
	NoiHaRong         string          `json:"noiHaRong"`
	Status            ContainerStatus `json:"status"`
	TallyApproved     bool            `json:"tallyApproved"`
	WorkOrderApproved bool            `json:"workOrderApproved"`
	Remarks           string          `json:"remarks"`
	WorkerNames       StringList      `json:"workerNames"`
	LastUrgedAt       *time.Time      `json:"lastUrgedAt,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// IdentityKey returns the merge key for imports.
func (c *Container) IdentityKey() string {
	return c.ContainerNo + "_" + c.NgayKeHoach
}

// UpdateContainerRequest is the per-record update path. Pointer fields are
// applied only when present so a PATCH never blanks untouched columns.
type UpdateContainerRequest struct {
	Status            *ContainerStatus `json:"status,omitempty"`
	TallyApproved     *bool            `json:"tallyApproved,omitempty"`
	WorkOrderApproved *bool            `json:"workOrderApproved,omitempty"`
	Remarks           *string          `json:"remarks,omitempty"`
	WorkerNames       *StringList      `json:"workerNames,omitempty"`
	LastUrgedAt       *time.Time       `json:"lastUrgedAt,omitempty"`
}
