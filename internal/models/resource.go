package models

// Resource kinds for the shared resource list
const (
	ResourceWorker = "WORKER"
	ResourceTeam   = "TEAM"
)

// ResourceItem is a reusable worker or team entry managed on the resource
// screen. Name is unique within its kind, case-insensitive.
type ResourceItem struct {
	ID          string `json:"id"`
	Kind        string `json:"-"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Department  string `json:"department"`
}
