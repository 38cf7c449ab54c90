// Package tasks migrates task records between files with real-time progress reporting.
//
// # Migration
//
// [MigrationEngine.Migrate] reads every record from a [Source] and inserts each one, in order, into a
// [Destination]. A [store.Store] is both. Migration is not atomic:
//   - records already in the destination stay first
//   - nothing is deduplicated
//   - a failed insert leaves the records written so far in place, and [MigrationResult.Migrated] says how many
//
// # Progress Reporting
//
// Progress updates are sent on an optional channel with select/default, so a slow or absent reader
// never blocks a migration. Updates may be dropped when the channel is full.
//
// # Job History
//
// The optional [JobRecorder] stores a [models.MigrationJob] when a migration starts and again when it
// finishes (repositories.JobRecorderAdapter in practice). Recorder errors are logged and ignored.
package tasks
