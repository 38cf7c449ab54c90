package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

// UnknownTask is the task text of the placeholder record produced for a malformed delimited line.
const UnknownTask = "Unknown Task"

// Degraded describes a delimited line that was replaced by a placeholder record.
type Degraded struct {
	Line int    // 1-based line number
	Text string // raw line content
}

// Decoded is the result of decoding a task file.
type Decoded struct {
	Records  []models.Record
	Degraded []Degraded // delimited only
	Ignored  bool       // structured input parsed but was not an array of objects
}

// Codec decodes and encodes task files for one [Format]. The zero value is a structured codec.
//
// Codecs hold no state besides the format and are safe to copy.
type Codec struct {
	format Format
}

// NewCodec returns the [Codec] for f.
func NewCodec(f Format) Codec {
	return Codec{format: f}
}

// Format returns the encoding handled by c.
func (c Codec) Format() Format {
	return c.format
}

// Decode turns file contents into the ordered record sequence. Empty input yields an empty sequence.
func (c Codec) Decode(data []byte) (*Decoded, error) {
	switch c.format {
	case Delimited:
		return decodeDelimited(data), nil
	default:
		return decodeStructured(data)
	}
}

// Encode serializes the full record sequence.
func (c Codec) Encode(records []models.Record) ([]byte, error) {
	switch c.format {
	case Delimited:
		var buf bytes.Buffer
		for _, r := range records {
			line, err := c.EncodeLine(r)
			if err != nil {
				return nil, err
			}
			buf.Write(line)
		}
		return buf.Bytes(), nil
	default:
		return encodeStructured(records)
	}
}

// EncodeLine serializes a single record as one newline-terminated delimited line.
//
// Only meaningful for [Delimited]; structured files cannot be appended to.
func (c Codec) EncodeLine(r models.Record) ([]byte, error) {
	if c.format != Delimited {
		return nil, fmt.Errorf("%w: %s records are not line oriented", shared.ErrUnsupportedFormat, c.format)
	}
	if err := c.CanEncode(r.Task); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(r.Task, `"`, `""`))
	b.WriteString(`",`)
	b.WriteString(strconv.FormatBool(r.Done))
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// CanEncode reports whether task is representable in c's encoding.
func (c Codec) CanEncode(task string) error {
	if c.format == Delimited && strings.ContainsAny(task, "\r\n") {
		return fmt.Errorf("%w: task contains a line break, which %s files cannot store", shared.ErrInvalidArgument, c.format)
	}
	return nil
}

func decodeStructured(data []byte) (*Decoded, error) {
	out := &Decoded{Records: []models.Record{}}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrParse, err)
	}

	items, ok := raw.([]any)
	if !ok {
		out.Ignored = raw != nil
		return out, nil
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			out.Ignored = true
			return out, nil
		}
		records = append(records, models.Record{
			Task: structuredTask(obj["task"]),
			Done: structuredDone(obj["done"]),
		})
	}
	out.Records = records

	return out, nil
}

// structuredTask returns string tasks verbatim, "" for a missing task, and the JSON text of other scalars.
func structuredTask(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		text, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(text)
	}
}

func structuredDone(v any) bool {
	switch d := v.(type) {
	case bool:
		return d
	case string:
		return parseDone(d)
	default:
		return false
	}
}

func encodeStructured(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeDelimited(data []byte) *Decoded {
	out := &Decoded{Records: []models.Record{}}
	if len(data) == 0 {
		return out
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		r, ok := parseLine(line)
		if !ok {
			out.Degraded = append(out.Degraded, Degraded{Line: i + 1, Text: line})
			r = models.Record{Task: UnknownTask}
		}
		out.Records = append(out.Records, r)
	}

	return out
}

// parseLine reads one delimited line. ok is false when the done field is missing.
func parseLine(line string) (r models.Record, ok bool) {
	var task, rest string

	if strings.HasPrefix(line, `"`) {
		task, rest, ok = splitQuoted(line[1:])
	} else {
		task, rest, ok = strings.Cut(line, ",")
		task = strings.ReplaceAll(task, `"`, "")
	}
	if !ok {
		return models.Record{}, false
	}

	return models.Record{Task: task, Done: parseDone(rest)}, true
}

// splitQuoted scans a quoted field whose opening quote was already consumed.
//
// `""` is an escaped quote. The field ends at the first unescaped quote followed by a comma; any other
// lone quote is kept as text.
func splitQuoted(s string) (task, rest string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) {
			switch s[i+1] {
			case '"':
				b.WriteByte('"')
				i++
				continue
			case ',':
				return b.String(), s[i+2:], true
			}
		}
		b.WriteByte('"')
	}
	return "", "", false
}

func parseDone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
