package tasks

import (
	"fmt"

	"github.com/desertthunder/todox/internal/models"
)

// ProgressUpdate represents a progress event during a migration.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadSource Phase = iota
	InsertRecords
	Complete
)

func (p Phase) String() string {
	switch p {
	case ReadSource:
		return "read_source"
	case InsertRecords:
		return "insert_records"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func readSourceUpdate(path, format string) ProgressUpdate {
	msg := "Reading source records..."
	if path != "" {
		msg = fmt.Sprintf("Reading %s (%s)...", path, format)
	}
	return ProgressUpdate{
		Phase:   ReadSource,
		Step:    0,
		Total:   1,
		Message: msg,
	}
}

func foundRecordsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d records", total),
	}
}

func insertRecordUpdate(step, total int, r models.Record) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertRecords,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] [%s] %s", step, total, r.Status(), r.Task),
		Data:    r,
	}
}

func completeUpdate(migrated int, path, format string) ProgressUpdate {
	msg := fmt.Sprintf("Migrated %d records", migrated)
	if path != "" {
		msg = fmt.Sprintf("Migrated %d records to %s (%s)", migrated, path, format)
	}
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: msg,
	}
}
