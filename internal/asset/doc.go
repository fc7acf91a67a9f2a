// Package asset manages the inspectable equipment catalog: components
// (roofs, HVAC units, plumbing runs) and monitoring sensors, plus their
// many-to-many associations with buildings.
//
// Association Semantics:
//
// Attaching a component or sensor to a building is idempotent. The join
// tables carry a composite primary key, and attachment uses INSERT OR
// IGNORE, so repeating an attach is a no-op rather than an error.
// Detaching removes exactly one join row; detaching an association that
// does not exist returns a not-found error.
package asset
