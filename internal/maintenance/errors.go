package maintenance

import "errors"

// Domain errors for the maintenance package.
var (
	// ErrRequestNotFound is returned when a request ID does not exist.
	ErrRequestNotFound = errors.New("maintenance: request not found")

	// ErrBuildingNotFound is returned when a referenced building does not exist.
	ErrBuildingNotFound = errors.New("maintenance: building not found")

	// ErrComponentNotFound is returned when a referenced component does not exist.
	ErrComponentNotFound = errors.New("maintenance: component not found")

	// ErrTechnicianNotFound is returned when a referenced technician does not exist.
	ErrTechnicianNotFound = errors.New("maintenance: technician not found")

	// ErrNotTechnician is returned when the working user does not hold the technician role.
	ErrNotTechnician = errors.New("maintenance: user is not a technician")

	// ErrInvalidPriority is returned when a priority is outside 1-3.
	ErrInvalidPriority = errors.New("maintenance: priority must be between 1 and 3")

	// ErrInvalidTransition is returned when a status change violates the lifecycle.
	ErrInvalidTransition = errors.New("maintenance: invalid status transition")

	// ErrRequestClosed is returned when mutating a completed or cancelled request.
	ErrRequestClosed = errors.New("maintenance: request is closed")

	// ErrRequestNotClosed is returned when reopening a request that is still active.
	ErrRequestNotClosed = errors.New("maintenance: request is not closed")

	// ErrNoWorkLogged is returned when completing a request with no work history.
	ErrNoWorkLogged = errors.New("maintenance: no work logged against request")
)
