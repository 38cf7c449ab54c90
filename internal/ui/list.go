package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/todox/internal/models"
)

var _ list.Item = recordItem{}

// recordItem wraps [models.Record] to implement [list.Item].
type recordItem struct {
	record   models.Record
	position int // 1-based position in the file
}

func (i recordItem) FilterValue() string { return i.record.Task }
func (i recordItem) Title() string {
	if i.record.Task == "" {
		return "(empty)"
	}
	return i.record.Task
}
func (i recordItem) Description() string {
	return fmt.Sprintf("%s • #%d", styles.Marker(i.record.Done), i.position)
}

// recordItems converts the records passing the done filter to list items, keeping file positions.
func recordItems(records []models.Record, onlyDone bool) []list.Item {
	items := make([]list.Item, 0, len(records))
	for i, r := range records {
		if onlyDone && !r.Done {
			continue
		}
		items = append(items, recordItem{record: r, position: i + 1})
	}
	return items
}
