// Package maintenance manages repair requests and their work history.
//
// A request moves through a fixed lifecycle:
//
//	open -> in_progress -> completed
//	open | in_progress -> cancelled
//
// completed and cancelled are terminal. Closed requests are never mutated;
// follow-up work goes through Reopen, which files a fresh open request
// linked back to the closed one.
//
// The first work entry logged against an open request flips it to
// in_progress automatically. A request cannot be completed until at least
// one work entry exists. Every status transition re-reads the current
// status inside the same transaction as the write, so concurrent
// transitions serialize cleanly.
//
// Priority is set at creation and never changes: 1 = emergency,
// 2 = urgent, 3 = routine. Re-prioritising means cancelling and filing a
// new request.
package maintenance
