package maintenance

import "time"

// Status represents where a request sits in its lifecycle.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses returns every valid request status.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled}
}

// IsTerminal returns true for statuses that permit no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the allowed lifecycle graph.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Priority levels. Lower is more severe.
const (
	PriorityEmergency = 1
	PriorityUrgent    = 2
	PriorityRoutine   = 3
)

// Request represents a repair request against a building component.
// Priority is immutable after creation.
type Request struct {
	ID             string    `json:"id"`
	BuildingID     string    `json:"building_id"`
	ComponentID    string    `json:"component_id"`
	RequestDate    time.Time `json:"request_date"`
	Description    string    `json:"description,omitempty"`
	Priority       int       `json:"priority"`
	Status         Status    `json:"status"`
	ReopenedFromID *string   `json:"reopened_from_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HistoryEntry represents one unit of logged work against a request.
// History is append-only.
type HistoryEntry struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	TechnicianID string    `json:"technician_id"`
	WorkDate     time.Time `json:"work_date"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
