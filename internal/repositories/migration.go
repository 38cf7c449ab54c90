package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

const migrationColumns = `
	id, sequence, source_path, source_format, dest_path, dest_format,
	status, records_total, records_migrated, error_message,
	started_at, completed_at, created_at, updated_at, deleted_at
`

// MigrationRepository implements models.Repository[*models.MigrationJob] for migration history.
//
// Handles migration job CRUD operations with soft delete support and status-based queries.
type MigrationRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.MigrationJob] = (*MigrationRepository)(nil)

// NewMigrationRepository creates a new MigrationRepository with the given database connection
func NewMigrationRepository(db *sql.DB) *MigrationRepository {
	return &MigrationRepository{db: db}
}

// Create inserts a new migration job into the database with generated ID and sequence
func (r *MigrationRepository) Create(migration *models.MigrationJob) error {
	if err := migration.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "migrations")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	migration.SetID(shared.GenerateID())
	migration.SetSequence(sequence)

	query := `
		INSERT INTO migrations (
			id, sequence, source_path, source_format, dest_path, dest_format,
			status, records_total, records_migrated, error_message,
			started_at, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		migration.ID(),
		migration.Sequence(),
		migration.SourcePath(),
		migration.SourceFormat(),
		migration.DestPath(),
		migration.DestFormat(),
		migration.Status(),
		migration.RecordsTotal(),
		migration.RecordsMigrated(),
		nullString(migration.ErrorMessage()),
		migration.StartedAt(),
		migration.CompletedAt(),
		migration.CreatedAt(),
		migration.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert migration: %w", err)
	}

	return nil
}

// Get retrieves a migration job by ID, excluding soft-deleted migrations
func (r *MigrationRepository) Get(id string) (*models.MigrationJob, error) {
	query := `SELECT ` + migrationColumns + ` FROM migrations WHERE id = ? AND deleted_at IS NULL`

	migration, err := scanMigration(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	return migration, err
}

// Update writes the mutable fields of an existing migration job
func (r *MigrationRepository) Update(migration *models.MigrationJob) error {
	if err := migration.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	migration.SetUpdatedAt(now)

	query := `
		UPDATE migrations
		SET status = ?, records_total = ?, records_migrated = ?, error_message = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		migration.Status(),
		migration.RecordsTotal(),
		migration.RecordsMigrated(),
		nullString(migration.ErrorMessage()),
		migration.StartedAt(),
		migration.CompletedAt(),
		now,
		migration.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update migration: %w", err)
	}

	return expectAffected(result, migration.ID())
}

// Delete soft-deletes a migration job by ID
func (r *MigrationRepository) Delete(id string) error {
	query := `
		UPDATE migrations
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete migration: %w", err)
	}

	return expectAffected(result, id)
}

// List retrieves migration jobs matching the given criteria, newest first, excluding soft-deleted migrations.
//
// Supported criteria: "status", "source_path", "dest_path" (string) and "limit" (int).
func (r *MigrationRepository) List(criteria map[string]any) ([]*models.MigrationJob, error) {
	query := `SELECT ` + migrationColumns + ` FROM migrations WHERE deleted_at IS NULL`
	args := []any{}

	for _, column := range []string{"status", "source_path", "dest_path"} {
		if v, ok := criteria[column].(string); ok && v != "" {
			query += " AND " + column + " = ?"
			args = append(args, v)
		}
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var migrations []*models.MigrationJob
	for rows.Next() {
		migration, err := scanMigration(rows)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, migration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return migrations, nil
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMigration scans one row into a [models.MigrationJob]. [sql.ErrNoRows] is returned unwrapped.
func scanMigration(row rowScanner) (*models.MigrationJob, error) {
	var (
		id              string
		sequence        int
		sourcePath      string
		sourceFormat    string
		destPath        string
		destFormat      string
		status          string
		recordsTotal    int
		recordsMigrated int
		errorMessage    sql.NullString
		startedAt       sql.NullTime
		completedAt     sql.NullTime
		createdAt       time.Time
		updatedAt       time.Time
		deletedAt       sql.NullTime
	)

	err := row.Scan(
		&id, &sequence, &sourcePath, &sourceFormat, &destPath, &destFormat,
		&status, &recordsTotal, &recordsMigrated, &errorMessage,
		&startedAt, &completedAt, &createdAt, &updatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan migration: %w", err)
	}

	migration := models.NewMigrationJob(sequence, sourcePath, sourceFormat, destPath, destFormat)
	migration.SetID(id)
	migration.SetStatus(status)
	migration.SetRecordsTotal(recordsTotal)
	migration.SetRecordsMigrated(recordsMigrated)
	migration.SetCreatedAt(createdAt)
	migration.SetUpdatedAt(updatedAt)

	if errorMessage.Valid {
		migration.SetErrorMessage(errorMessage.String)
	}
	if startedAt.Valid {
		migration.SetStartedAt(&startedAt.Time)
	}
	if completedAt.Valid {
		migration.SetCompletedAt(&completedAt.Time)
	}
	if deletedAt.Valid {
		migration.SetDeletedAt(&deletedAt.Time)
	}

	return migration, nil
}
