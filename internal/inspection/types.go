package inspection

import "time"

// Condition score bounds.
const (
	MinCondition = 1 // failing
	MaxCondition = 5 // excellent
)

// Report represents a single inspection of a building, optionally scoped
// to one component. Reports are immutable once filed.
type Report struct {
	ID          string    `json:"id"`
	BuildingID  string    `json:"building_id"`
	InspectorID string    `json:"inspector_id"`
	ComponentID *string   `json:"component_id,omitempty"`
	ReportDate  time.Time `json:"report_date"`
	Condition   int       `json:"condition"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
