// Package inspection manages building inspection reports.
//
// Reports are append-only. A filed report is never updated or deleted;
// a correction is simply a newer report, and reads that want the current
// state take the latest report per building or component.
//
// Each report carries a 1-5 condition score (1 = failing, 5 = excellent)
// and an optional explicit component reference, which is what ties a
// report to the specific piece of equipment it assessed.
//
// Create validates the building, the inspector's role, and any component
// reference inside the same transaction as the insert, so a concurrent
// archive or role change cannot slip between the check and the write.
package inspection
