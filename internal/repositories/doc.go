// Package repositories implements SQLite persistence for migration history.
//
// [MigrationRepository] handles CRUD operations for [models.MigrationJob] with atomic sequence
// generation for human-readable ordering. Deletes are soft: deleted_at is set and deleted jobs are
// excluded from queries.
//
// [JobRecorderAdapter] plugs the repository into the migration engine (tasks.JobRecorder).
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
