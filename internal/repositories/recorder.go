package repositories

import (
	"fmt"

	"github.com/desertthunder/todox/internal/models"
)

// JobRecorderAdapter implements tasks.JobRecorder using MigrationRepository.
//
// The first call creates the row and later calls update it, so a job that failed to insert is retried
// on finish.
type JobRecorderAdapter struct {
	repo *MigrationRepository
}

// NewJobRecorderAdapter creates a new JobRecorderAdapter with the given repository
func NewJobRecorderAdapter(repo *MigrationRepository) *JobRecorderAdapter {
	return &JobRecorderAdapter{repo: repo}
}

// RecordStart stores a new job.
func (a *JobRecorderAdapter) RecordStart(job *models.MigrationJob) error {
	if err := a.repo.Create(job); err != nil {
		return fmt.Errorf("failed to record migration start: %w", err)
	}
	return nil
}

// RecordFinish stores the final state of a job.
func (a *JobRecorderAdapter) RecordFinish(job *models.MigrationJob) error {
	if job.ID() == "" {
		return a.RecordStart(job)
	}
	if err := a.repo.Update(job); err != nil {
		return fmt.Errorf("failed to record migration result: %w", err)
	}
	return nil
}
