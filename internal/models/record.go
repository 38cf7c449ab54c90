package models

// Record is one task entry.
//
// Records carry no identity; two records with the same text and flag are distinguished only by position.
type Record struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// NewRecord builds a [Record].
func NewRecord(task string, done bool) Record {
	return Record{Task: task, Done: done}
}

// Status returns the list marker for the record, "DONE" or "TODO".
func (r Record) Status() string {
	if r.Done {
		return "DONE"
	}
	return "TODO"
}

// CountDone returns how many records are done.
func CountDone(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Done {
			n++
		}
	}
	return n
}

// FilterDone returns the records passing the list filter, preserving order.
//
// With onlyDone false every record passes.
func FilterDone(records []Record, onlyDone bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !onlyDone || r.Done {
			out = append(out, r)
		}
	}
	return out
}
