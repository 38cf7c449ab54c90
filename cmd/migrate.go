package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/repositories"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/desertthunder/todox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// jobView is the JSON shape of a recorded migration.
type jobView struct {
	ID              string     `json:"id"`
	Sequence        int        `json:"sequence"`
	SourcePath      string     `json:"source_path"`
	SourceFormat    string     `json:"source_format"`
	DestPath        string     `json:"dest_path"`
	DestFormat      string     `json:"dest_format"`
	Status          string     `json:"status"`
	RecordsTotal    int        `json:"records_total"`
	RecordsMigrated int        `json:"records_migrated"`
	Error           string     `json:"error,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newJobView(job *models.MigrationJob) jobView {
	return jobView{
		ID:              job.ID(),
		Sequence:        job.Sequence(),
		SourcePath:      job.SourcePath(),
		SourceFormat:    job.SourceFormat(),
		DestPath:        job.DestPath(),
		DestFormat:      job.DestFormat(),
		Status:          job.Status(),
		RecordsTotal:    job.RecordsTotal(),
		RecordsMigrated: job.RecordsMigrated(),
		Error:           job.ErrorMessage(),
		StartedAt:       job.StartedAt(),
		CompletedAt:     job.CompletedAt(),
		CreatedAt:       job.CreatedAt(),
	}
}

// Migrate appends every task of the source file to the output file.
//
// The run is recorded in the history database when one is configured. History failures are logged and
// never fail the migration.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	src, err := r.openStore(cmd, "source")
	if err != nil {
		return err
	}
	dst, err := r.openStore(cmd, "output")
	if err != nil {
		return err
	}

	if samePath(src.Path(), dst.Path()) {
		return fmt.Errorf("%w: source and output are the same file: %s", shared.ErrInvalidArgument, src.Path())
	}

	engine := tasks.NewMigrationEngine(r.recorder(), r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	quiet := cmd.Bool("quiet")

	go func() {
		defer close(done)
		for update := range progressCh {
			if quiet {
				continue
			}
			switch update.Phase {
			case tasks.InsertRecords:
				r.writePlain("  %s\n", update.Message)
			default:
				r.writePlain("→ %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Migrate(src, dst, progressCh)
	close(progressCh)
	<-done

	if result != nil {
		r.writePlainln("")
		r.writePlainHeader("Migration Summary")
		r.writePlain("Source:      %s (%s)\n", src.Path(), src.Format())
		r.writePlain("Destination: %s (%s)\n", dst.Path(), dst.Format())
		r.writePlain("Migrated:    %d/%d\n", result.Migrated, result.Total)
		if result.Job != nil && result.Job.Sequence() > 0 {
			r.writePlain("Job:         #%d\n", result.Job.Sequence())
		}
	}

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	r.logger.Info("migration complete", "source", src.Path(), "destination", dst.Path(), "records", result.Migrated)
	return nil
}

// History lists recorded migrations, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.historyDB()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	if db == nil {
		return fmt.Errorf("%w: database.path is empty, migration history is disabled", shared.ErrMissingConfig)
	}

	status := cmd.String("status")
	switch status {
	case "", models.JobPending, models.JobRunning, models.JobCompleted, models.JobFailed:
	default:
		return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidFlag, status)
	}

	repo := repositories.NewMigrationRepository(db)
	jobs, err := repo.List(map[string]any{"status": status, "limit": cmd.Int("limit")})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]jobView, 0, len(jobs))
		for _, job := range jobs {
			views = append(views, newJobView(job))
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	if len(jobs) == 0 {
		return r.writePlain("No migrations recorded\n")
	}

	for _, job := range jobs {
		r.writePlain("#%-4d %-9s %s (%s) → %s (%s)  %d/%d  %s\n",
			job.Sequence(), job.Status(),
			job.SourcePath(), job.SourceFormat(), job.DestPath(), job.DestFormat(),
			job.RecordsMigrated(), job.RecordsTotal(),
			job.CreatedAt().Local().Format(time.DateTime),
		)
		if msg := job.ErrorMessage(); msg != "" {
			r.writePlain("      error: %s\n", msg)
		}
	}
	return nil
}

// recorder returns a job recorder backed by the history database, or nil when history is unavailable.
func (r *Runner) recorder() tasks.JobRecorder {
	db, err := r.historyDB()
	if err != nil {
		r.logger.Warn("migration history unavailable", "error", err)
		return nil
	}
	if db == nil {
		return nil
	}
	return repositories.NewJobRecorderAdapter(repositories.NewMigrationRepository(db))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
