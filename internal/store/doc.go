// Package store provides SQLite-backed history of check runs.
//
// Each run records the per-query outcome and every diagnostic:
//   - runs: one row per invocation of the checker, with summary counts
//   - query_results: one row per checked query
//   - diagnostics: one row per finding, keyed by query and report order
//
// Ordering uses seq columns (logical order), never timestamps, so reads
// return rows in the order they were reported.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: 5-second lock wait
//   - foreign_keys=ON: Enforce referential integrity
//
// Run IDs are UUIDv7 strings.
package store
