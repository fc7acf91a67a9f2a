package asset

import "time"

// SensorType classifies what a sensor measures.
type SensorType string

const (
	SensorTemperature SensorType = "temperature"
	SensorHumidity    SensorType = "humidity"
	SensorAirQuality  SensorType = "air_quality"
	SensorStructural  SensorType = "structural"
	SensorVision      SensorType = "vision"
)

// AllSensorTypes returns every valid sensor type.
func AllSensorTypes() []SensorType {
	return []SensorType{
		SensorTemperature,
		SensorHumidity,
		SensorAirQuality,
		SensorStructural,
		SensorVision,
	}
}

// validSensorTypes is the precomputed lookup set for enum validation.
var validSensorTypes map[SensorType]bool

func init() {
	validSensorTypes = make(map[SensorType]bool, len(AllSensorTypes()))
	for _, st := range AllSensorTypes() {
		validSensorTypes[st] = true
	}
}

// IsValidSensorType returns true if the sensor type is recognised.
func IsValidSensorType(t SensorType) bool {
	return validSensorTypes[t]
}

// Component represents a type of inspectable equipment. The same component
// record can be attached to many buildings.
type Component struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sensor represents a monitoring device type. Sensor names are unique.
type Sensor struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      SensorType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
}
