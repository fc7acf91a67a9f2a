package asset

import "errors"

// Domain errors for the asset package.
var (
	// ErrComponentNotFound is returned when a component ID does not exist.
	ErrComponentNotFound = errors.New("asset: component not found")

	// ErrInvalidComponent is returned when component validation fails.
	ErrInvalidComponent = errors.New("asset: invalid component")

	// ErrSensorNotFound is returned when a sensor ID or name does not exist.
	ErrSensorNotFound = errors.New("asset: sensor not found")

	// ErrSensorExists is returned when a sensor name is already taken.
	ErrSensorExists = errors.New("asset: sensor already exists")

	// ErrInvalidSensor is returned when sensor validation fails.
	ErrInvalidSensor = errors.New("asset: invalid sensor")

	// ErrInvalidSensorType is returned when a sensor type is not recognised.
	ErrInvalidSensorType = errors.New("asset: invalid sensor type")

	// ErrBuildingNotFound is returned when a referenced building does not exist.
	ErrBuildingNotFound = errors.New("asset: building not found")

	// ErrAssociationNotFound is returned when detaching a join row that does not exist.
	ErrAssociationNotFound = errors.New("asset: association not found")
)
