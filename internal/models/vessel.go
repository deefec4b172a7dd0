package models

import "time"

type Vessel struct {
	ID              string    `json:"id"`
	VesselName      string    `json:"vesselName"`
	VoyageNo        string    `json:"voyageNo"`
	Commodity       string    `json:"commodity"`
	Consignee       string    `json:"consignee"`
	ETA             string    `json:"eta,omitempty"`
	TotalContainers int       `json:"totalContainers"`
	TotalPkgs       int       `json:"totalPkgs"`
	TotalWeight     float64   `json:"totalWeight"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
