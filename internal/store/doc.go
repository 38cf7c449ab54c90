// Package store persists ordered task records to a single file in one of two encodings.
//
// # Encodings
//
// A [Format] is a tagged variant selected once per [Store]:
//
//   - [Structured] (`.json`): one JSON array of {"task", "done"} objects. Inserts decode the whole
//     file, append, and rewrite it. Invalid JSON is an [shared.ErrParse]; valid JSON that is not an
//     array of objects decodes to an empty sequence.
//   - [Delimited] (`.csv`): one `"task",done` line per record. Inserts append a single line and never
//     read the existing content. Decoding is lenient: a line without a done field becomes the
//     placeholder record ("Unknown Task", false) and is reported in [Decoded.Degraded].
//
// # Quoting
//
// The delimited task field is always quoted on write. A literal double quote inside a task is written
// doubled (`""`), as in RFC 4180, and read back as a single quote. For tasks without quotes the field
// therefore ends at the first `",`. Lines that do not start with a quote are legacy lines: the task is
// everything before the first comma with quote characters removed.
//
// Tasks containing a line break cannot be represented in the delimited encoding; [Store.Insert]
// rejects them with [shared.ErrInvalidArgument].
//
// # Errors
//
// Every failure is returned wrapped around one of the sentinels in package shared:
// [shared.ErrUnsupportedFormat], [shared.ErrParse], [shared.ErrIO], [shared.ErrInvalidArgument].
// Nothing is retried and a failed structured rewrite is not repaired.
package store
