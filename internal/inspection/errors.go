package inspection

import "errors"

// Domain errors for the inspection package.
var (
	// ErrReportNotFound is returned when a report ID does not exist.
	ErrReportNotFound = errors.New("inspection: report not found")

	// ErrBuildingNotFound is returned when a referenced building does not exist.
	ErrBuildingNotFound = errors.New("inspection: building not found")

	// ErrInspectorNotFound is returned when a referenced inspector does not exist.
	ErrInspectorNotFound = errors.New("inspection: inspector not found")

	// ErrNotInspector is returned when the filing user does not hold the inspector role.
	ErrNotInspector = errors.New("inspection: user is not an inspector")

	// ErrComponentNotFound is returned when a referenced component does not exist.
	ErrComponentNotFound = errors.New("inspection: component not found")

	// ErrInvalidCondition is returned when a condition score is outside 1-5.
	ErrInvalidCondition = errors.New("inspection: condition must be between 1 and 5")
)
