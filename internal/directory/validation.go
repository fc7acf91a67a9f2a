package directory

import "regexp"

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// Precomputed lookup sets for enum validation.
var (
	validRoles         map[Role]bool
	validBuildingTypes map[BuildingType]bool
)

func init() {
	validRoles = make(map[Role]bool, len(AllRoles()))
	for _, r := range AllRoles() {
		validRoles[r] = true
	}

	validBuildingTypes = make(map[BuildingType]bool, len(AllBuildingTypes()))
	for _, t := range AllBuildingTypes() {
		validBuildingTypes[t] = true
	}
}

// IsValidUsername checks if a username meets format requirements.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidRole returns true if the role is recognised.
func IsValidRole(r Role) bool {
	return validRoles[r]
}

// IsValidBuildingType returns true if the building type is recognised.
func IsValidBuildingType(t BuildingType) bool {
	return validBuildingTypes[t]
}

// ValidateUser checks a user for creation.
func ValidateUser(u *User) error {
	if !IsValidUsername(u.Username) {
		return ErrInvalidUsername
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// ValidateSchool checks a school for creation.
func ValidateSchool(s *School) error {
	if s.Name == "" {
		return ErrInvalidSchool
	}
	return nil
}

// ValidateBuilding checks a building for creation.
func ValidateBuilding(b *Building) error {
	if !IsValidBuildingType(b.Type) {
		return ErrInvalidBuildingType
	}
	if b.SquareFootage <= 0 {
		return ErrInvalidSquareFootage
	}
	return nil
}
