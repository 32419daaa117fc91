// Package sync implements the push/pull synchronization with the remote
// spreadsheet-backed endpoint.
//
// # Coordinator
//
// The Coordinator is a small state machine (idle / debouncing / pushing)
// driven by an injectable Clock, so its timing behavior is deterministic
// under test. Local edits schedule a push; the debounce timer coalesces
// bursts into one request, the minimum interval caps push frequency across
// bursts, and a failure cooldown keeps a broken endpoint from being
// hammered. Pull runs independently, validates the response shape, and
// applies the protect-empty rule before replacing local state wholesale.
//
// # Why three gates
//
// Borrow, return and add each fire a push. Debounce collapses one user
// interaction into one request; the minimum interval protects the endpoint
// from rapid successive interactions; the cooldown backs off after failures.
//
// # Archiver
//
// When enabled, every successfully pushed payload is also written to object
// storage as a timestamped JSON snapshot.
package sync
