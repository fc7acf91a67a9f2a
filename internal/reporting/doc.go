// Package reporting provides read-only aggregations over the facilities
// store: condition trends, technician workload, and the current condition
// of every inspected component.
//
// All queries are derived live from the underlying tables; nothing is
// materialized. The urgent repair queue is a write-side concern and lives
// in the maintenance package.
package reporting
