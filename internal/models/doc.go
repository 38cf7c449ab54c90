// Package models defines domain entities and persistence interfaces for todox.
//
// The package contains two categories of types:
//
// 1. Value types: plain structs exchanged between the store, the migrator and the presentation layers
//   - [Record] : one task entry (task text + completion flag), identified only by its position in a file
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [MigrationJob] : one `todox migrate` run, tracking source, destination, progress and outcome
//
// Persistent entities implement the [Model] interface providing IDs, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
