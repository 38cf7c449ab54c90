package tasks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/store"
)

// Source yields every record of a task file in order.
type Source interface {
	ReadAll() ([]models.Record, error)
}

// Destination accepts records one at a time at the end of a task file.
type Destination interface {
	Insert(task string, done bool) error
}

// JobRecorder persists the lifecycle of a migration.
//
// Recorder failures are logged by the engine and never abort a migration.
type JobRecorder interface {
	RecordStart(job *models.MigrationJob) error
	RecordFinish(job *models.MigrationJob) error
}

// MigrationResult describes one completed or partial migration.
type MigrationResult struct {
	Records  []models.Record      // Records read from the source
	Total    int                  // Number of records read from the source
	Migrated int                  // Number of records inserted into the destination, always a prefix of Records
	Job      *models.MigrationJob // Job as recorded, nil when no recorder is configured
}

// Complete reports whether every source record reached the destination.
func (r *MigrationResult) Complete() bool {
	return r.Migrated == r.Total
}

// MigrationEngine moves records between task files.
type MigrationEngine struct {
	recorder JobRecorder
	logger   *log.Logger
}

// NewMigrationEngine creates a [MigrationEngine]. Both arguments may be nil.
func NewMigrationEngine(recorder JobRecorder, logger *log.Logger) *MigrationEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MigrationEngine{recorder: recorder, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *MigrationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Migrate reads every record from src and inserts each one, in order, into dst.
//
// Records already in dst stay ahead of the migrated ones; nothing is deduplicated. There is no rollback:
// when an insert fails the result reports how many records were written before the failure.
func (e *MigrationEngine) Migrate(src Source, dst Destination, progress chan<- ProgressUpdate) (*MigrationResult, error) {
	job := e.begin(src, dst)
	result := &MigrationResult{Job: job}

	e.sendProgress(progress, readSourceUpdate(describe(src)))

	records, err := src.ReadAll()
	if err != nil {
		err = fmt.Errorf("failed to read source: %w", err)
		e.finish(job, 0, err)
		return result, err
	}

	total := len(records)
	result.Records = records
	result.Total = total
	if job != nil {
		job.Start(total)
	}

	e.sendProgress(progress, foundRecordsUpdate(total))

	for i, r := range records {
		if err := dst.Insert(r.Task, r.Done); err != nil {
			err = fmt.Errorf("failed to insert record %d of %d: %w", i+1, total, err)
			e.finish(job, result.Migrated, err)
			return result, err
		}
		result.Migrated++
		e.sendProgress(progress, insertRecordUpdate(i+1, total, r))
	}

	e.finish(job, result.Migrated, nil)
	dstPath, dstFormat := describe(dst)
	e.sendProgress(progress, completeUpdate(result.Migrated, dstPath, dstFormat))
	return result, nil
}

// begin creates and records a pending job, or returns nil without a recorder.
func (e *MigrationEngine) begin(src Source, dst Destination) *models.MigrationJob {
	if e.recorder == nil {
		return nil
	}

	srcPath, srcFormat := describe(src)
	dstPath, dstFormat := describe(dst)
	job := models.NewMigrationJob(0, srcPath, srcFormat, dstPath, dstFormat)

	if err := e.recorder.RecordStart(job); err != nil {
		e.logger.Warn("failed to record migration start", "source", srcPath, "dest", dstPath, "error", err)
	}
	return job
}

func (e *MigrationEngine) finish(job *models.MigrationJob, migrated int, err error) {
	if job == nil {
		return
	}

	job.Finish(migrated, err)
	if recErr := e.recorder.RecordFinish(job); recErr != nil {
		e.logger.Warn("failed to record migration result", "job", job.ID(), "status", job.Status(), "error", recErr)
	}
}

// describe returns the path and encoding name of a store-like endpoint, or empty strings.
func describe(v any) (path, format string) {
	if p, ok := v.(interface{ Path() string }); ok {
		path = p.Path()
	}
	if f, ok := v.(interface{ Format() store.Format }); ok {
		format = f.Format().String()
	}
	return path, format
}
