package models

import (
	"fmt"
	"time"
)

// Migration job statuses.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// MigrationJob tracks one migration of task records between two files.
type MigrationJob struct {
	id              string
	sequence        int
	sourcePath      string
	sourceFormat    string
	destPath        string
	destFormat      string
	status          string
	recordsTotal    int
	recordsMigrated int
	errorMessage    string
	startedAt       *time.Time
	completedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewMigrationJob creates a pending [MigrationJob].
func NewMigrationJob(sequence int, sourcePath, sourceFormat, destPath, destFormat string) *MigrationJob {
	now := time.Now()
	return &MigrationJob{
		sequence:     sequence,
		sourcePath:   sourcePath,
		sourceFormat: sourceFormat,
		destPath:     destPath,
		destFormat:   destFormat,
		status:       JobPending,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (m *MigrationJob) ID() string              { return m.id }
func (m *MigrationJob) Sequence() int           { return m.sequence }
func (m *MigrationJob) SourcePath() string      { return m.sourcePath }
func (m *MigrationJob) SourceFormat() string    { return m.sourceFormat }
func (m *MigrationJob) DestPath() string        { return m.destPath }
func (m *MigrationJob) DestFormat() string      { return m.destFormat }
func (m *MigrationJob) Status() string          { return m.status }
func (m *MigrationJob) RecordsTotal() int       { return m.recordsTotal }
func (m *MigrationJob) RecordsMigrated() int    { return m.recordsMigrated }
func (m *MigrationJob) ErrorMessage() string    { return m.errorMessage }
func (m *MigrationJob) StartedAt() *time.Time   { return m.startedAt }
func (m *MigrationJob) CompletedAt() *time.Time { return m.completedAt }
func (m *MigrationJob) CreatedAt() time.Time    { return m.createdAt }
func (m *MigrationJob) UpdatedAt() time.Time    { return m.updatedAt }
func (m *MigrationJob) DeletedAt() *time.Time   { return m.deletedAt }

func (m *MigrationJob) SetID(id string)             { m.id = id }
func (m *MigrationJob) SetSequence(sequence int)    { m.sequence = sequence }
func (m *MigrationJob) SetStatus(status string)     { m.status = status }
func (m *MigrationJob) SetRecordsTotal(n int)       { m.recordsTotal = n }
func (m *MigrationJob) SetRecordsMigrated(n int)    { m.recordsMigrated = n }
func (m *MigrationJob) SetErrorMessage(msg string)  { m.errorMessage = msg }
func (m *MigrationJob) SetStartedAt(t *time.Time)   { m.startedAt = t }
func (m *MigrationJob) SetCompletedAt(t *time.Time) { m.completedAt = t }
func (m *MigrationJob) SetCreatedAt(t time.Time)    { m.createdAt = t }
func (m *MigrationJob) SetUpdatedAt(t time.Time)    { m.updatedAt = t }
func (m *MigrationJob) SetDeletedAt(t *time.Time)   { m.deletedAt = t }

// Start marks the job running with the number of records to move.
func (m *MigrationJob) Start(total int) {
	now := time.Now()
	m.status = JobRunning
	m.recordsTotal = total
	m.startedAt = &now
}

// Finish marks the job completed, or failed when err is non-nil.
func (m *MigrationJob) Finish(migrated int, err error) {
	now := time.Now()
	m.recordsMigrated = migrated
	m.completedAt = &now
	if err != nil {
		m.status = JobFailed
		m.errorMessage = err.Error()
		return
	}
	m.status = JobCompleted
	m.errorMessage = ""
}

// Validate checks required fields and status.
func (m *MigrationJob) Validate() error {
	if m.sourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if m.destPath == "" {
		return fmt.Errorf("destination path is required")
	}
	switch m.status {
	case JobPending, JobRunning, JobCompleted, JobFailed:
	default:
		return fmt.Errorf("invalid status: %q", m.status)
	}
	if m.recordsMigrated < 0 || m.recordsTotal < 0 {
		return fmt.Errorf("record counts must not be negative")
	}
	if m.recordsTotal > 0 && m.recordsMigrated > m.recordsTotal {
		return fmt.Errorf("migrated %d of %d records", m.recordsMigrated, m.recordsTotal)
	}
	return nil
}
