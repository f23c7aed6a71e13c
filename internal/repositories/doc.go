// Package repositories implements SQLite persistence for the run history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [AnalysisRunRepository] : One row per completed channel analysis
//   - [CreatedPlaylistRepository] : One row per playlist created from a tag, optionally linked to its run
//
// Sequence numbers provide stable, human-readable ordering (e.g., run #3, playlist #12) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
