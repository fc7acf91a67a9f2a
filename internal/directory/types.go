package directory

import "time"

// Role represents what a user account is allowed to do.
type Role string

const (
	// RoleInspector can file inspection reports against buildings.
	RoleInspector Role = "inspector"

	// RoleTechnician can log maintenance work against requests.
	RoleTechnician Role = "technician"

	// RoleAdmin manages users, schools, and buildings.
	RoleAdmin Role = "admin"
)

// AllRoles returns every valid role.
func AllRoles() []Role {
	return []Role{RoleInspector, RoleTechnician, RoleAdmin}
}

// BuildingType classifies a building by its primary use.
type BuildingType string

const (
	BuildingAdministration BuildingType = "administration"
	BuildingClassroom      BuildingType = "classroom"
	BuildingGymnasium      BuildingType = "gymnasium"
	BuildingLaboratory     BuildingType = "laboratory"
	BuildingLibrary        BuildingType = "library"
	BuildingOther          BuildingType = "other"
)

// AllBuildingTypes returns every valid building type.
func AllBuildingTypes() []BuildingType {
	return []BuildingType{
		BuildingAdministration,
		BuildingClassroom,
		BuildingGymnasium,
		BuildingLaboratory,
		BuildingLibrary,
		BuildingOther,
	}
}

// User represents an account in the facilities system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// School represents a school within the organization.
type School struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"address_line1,omitempty"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city,omitempty"`
	Region       string    `json:"region,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Building represents a physical building, optionally assigned to a school.
// A nil SchoolID means the building is organization-owned but unassigned
// (district offices, storage depots, buildings between reassignments).
type Building struct {
	ID            string       `json:"id"`
	SchoolID      *string      `json:"school_id,omitempty"`
	Name          string       `json:"name"`
	Type          BuildingType `json:"type"`
	SquareFootage int64        `json:"square_footage"`
	Archived      bool         `json:"archived"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
