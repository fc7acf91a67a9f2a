package reporting

import "time"

// TrendPoint is the average condition of a building's reports on one date.
// Dates with no reports do not appear.
type TrendPoint struct {
	Date             time.Time `json:"date"`
	AverageCondition float64   `json:"average_condition"`
	ReportCount      int       `json:"report_count"`
}

// TechnicianWorkload summarises logged work per technician. Technicians
// with no history report zero counts; archived technicians are included
// so past work stays attributable.
type TechnicianWorkload struct {
	TechnicianID string `json:"technician_id"`
	Username     string `json:"username"`
	RequestCount int    `json:"request_count"`
	EntryCount   int    `json:"entry_count"`
}

// CurrentCondition is the latest reported condition for one building
// component pair.
type CurrentCondition struct {
	BuildingID    string    `json:"building_id"`
	BuildingName  string    `json:"building_name"`
	ComponentID   string    `json:"component_id"`
	ComponentName string    `json:"component_name"`
	Condition     int       `json:"condition"`
	Notes         string    `json:"notes,omitempty"`
	ReportDate    time.Time `json:"report_date"`
}
