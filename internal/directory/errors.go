package directory

import "errors"

// Domain errors for the directory package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, directory.ErrUserNotFound) {
//	    // handle not found case
//	}
var (
	// ErrUserNotFound is returned when a user ID, username, or email does not exist.
	ErrUserNotFound = errors.New("directory: user not found")

	// ErrUserExists is returned when a username or email is already taken.
	ErrUserExists = errors.New("directory: user already exists")

	// ErrInvalidUsername is returned when a username fails format validation.
	ErrInvalidUsername = errors.New("directory: invalid username")

	// ErrInvalidRole is returned when a role value is not recognised.
	ErrInvalidRole = errors.New("directory: invalid role")

	// ErrSchoolNotFound is returned when a school ID or name does not exist.
	ErrSchoolNotFound = errors.New("directory: school not found")

	// ErrSchoolExists is returned when creating a school with a name already in use.
	ErrSchoolExists = errors.New("directory: school already exists")

	// ErrInvalidSchool is returned when school validation fails.
	ErrInvalidSchool = errors.New("directory: invalid school")

	// ErrBuildingNotFound is returned when a building ID does not exist.
	ErrBuildingNotFound = errors.New("directory: building not found")

	// ErrInvalidBuildingType is returned when a building type is not recognised.
	ErrInvalidBuildingType = errors.New("directory: invalid building type")

	// ErrInvalidSquareFootage is returned when a building size is zero or negative.
	ErrInvalidSquareFootage = errors.New("directory: invalid square footage")
)
