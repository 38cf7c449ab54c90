package models

import (
	"errors"
	"testing"
)

func TestRecord(t *testing.T) {
	records := []Record{
		NewRecord("Buy milk", false),
		NewRecord("Pay rent", true),
		NewRecord("Clean", true),
	}

	t.Run("Status", func(t *testing.T) {
		if got := records[0].Status(); got != "TODO" {
			t.Errorf("Status() = %s, want TODO", got)
		}
		if got := records[1].Status(); got != "DONE" {
			t.Errorf("Status() = %s, want DONE", got)
		}
	})

	t.Run("CountDone", func(t *testing.T) {
		if got := CountDone(records); got != 2 {
			t.Errorf("CountDone() = %d, want 2", got)
		}
		if got := CountDone(nil); got != 0 {
			t.Errorf("CountDone(nil) = %d, want 0", got)
		}
	})

	t.Run("FilterDone", func(t *testing.T) {
		all := FilterDone(records, false)
		if len(all) != 3 {
			t.Fatalf("expected all 3 records, got %d", len(all))
		}

		done := FilterDone(records, true)
		if len(done) != 2 {
			t.Fatalf("expected 2 done records, got %d", len(done))
		}
		if done[0].Task != "Pay rent" || done[1].Task != "Clean" {
			t.Errorf("expected order to be preserved, got %+v", done)
		}
	})
}

func TestMigrationJob(t *testing.T) {
	t.Run("NewMigrationJob is pending and valid", func(t *testing.T) {
		job := NewMigrationJob(1, "todos.json", "json", "todos.csv", "csv")
		if job.Status() != JobPending {
			t.Errorf("expected pending, got %s", job.Status())
		}
		if err := job.Validate(); err != nil {
			t.Errorf("expected valid job, got %v", err)
		}
		if job.CreatedAt().IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("Start and Finish", func(t *testing.T) {
		job := NewMigrationJob(1, "todos.json", "json", "todos.csv", "csv")
		job.Start(3)
		if job.Status() != JobRunning || job.RecordsTotal() != 3 || job.StartedAt() == nil {
			t.Fatalf("unexpected state after Start: %s %d", job.Status(), job.RecordsTotal())
		}

		job.Finish(3, nil)
		if job.Status() != JobCompleted || job.RecordsMigrated() != 3 || job.CompletedAt() == nil {
			t.Errorf("unexpected state after Finish: %s %d", job.Status(), job.RecordsMigrated())
		}
	})

	t.Run("Finish with error", func(t *testing.T) {
		job := NewMigrationJob(1, "todos.json", "json", "todos.csv", "csv")
		job.Start(3)
		job.Finish(1, errors.New("disk full"))

		if job.Status() != JobFailed {
			t.Errorf("expected failed, got %s", job.Status())
		}
		if job.ErrorMessage() != "disk full" {
			t.Errorf("expected error message to be kept, got %q", job.ErrorMessage())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name string
			job  *MigrationJob
		}{
			{name: "missing source", job: NewMigrationJob(1, "", "json", "b.csv", "csv")},
			{name: "missing destination", job: NewMigrationJob(1, "a.json", "json", "", "csv")},
			{name: "bad status", job: func() *MigrationJob {
				j := NewMigrationJob(1, "a.json", "json", "b.csv", "csv")
				j.SetStatus("paused")
				return j
			}()},
			{name: "too many migrated", job: func() *MigrationJob {
				j := NewMigrationJob(1, "a.json", "json", "b.csv", "csv")
				j.SetRecordsTotal(1)
				j.SetRecordsMigrated(2)
				return j
			}()},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.job.Validate(); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})
}
