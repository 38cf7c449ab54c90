// package formatter renders task records for display and export (list lines, Markdown, plain text)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/todox/internal/models"
)

// Line formats a record as a list line: "- [DONE] <task>" or "- [TODO] <task>".
func Line(r models.Record) string {
	return fmt.Sprintf("- [%s] %s", r.Status(), r.Task)
}

// Lines formats every record passing the done filter, in order.
func Lines(records []models.Record, onlyDone bool) []string {
	filtered := models.FilterDone(records, onlyDone)
	lines := make([]string, 0, len(filtered))
	for _, r := range filtered {
		lines = append(lines, Line(r))
	}
	return lines
}

// ExportFormat names an export rendering.
type ExportFormat string

const (
	Markdown ExportFormat = "markdown"
	Text     ExportFormat = "text"
)

// ParseExportFormat accepts "markdown"/"md" and "text"/"txt".
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected markdown or text)", name)
	}
}

// ToMarkdown renders records as a GitHub task list under a heading.
func ToMarkdown(title string, records []models.Record) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tasks**: %d (%d done)\n\n", len(records), models.CountDone(records)))

	for _, r := range records {
		box := " "
		if r.Done {
			box = "x"
		}
		buf.WriteString(fmt.Sprintf("- [%s] %s\n", box, r.Task))
	}

	return buf.Bytes()
}

// ToText renders records as list lines, one per line.
func ToText(records []models.Record) []byte {
	var buf bytes.Buffer
	for _, line := range Lines(records, false) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Render dispatches to the renderer for format.
func Render(format ExportFormat, title string, records []models.Record) ([]byte, error) {
	switch format {
	case Markdown:
		return ToMarkdown(title, records), nil
	case Text:
		return ToText(records), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// WriteExport renders records and writes them to path.
func WriteExport(format ExportFormat, title string, records []models.Record, path string) error {
	data, err := Render(format, title, records)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
