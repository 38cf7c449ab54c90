package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/formatter"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

// Store binds a [Codec] to a file path.
//
// Every call reads the current file state; nothing is cached between calls. A missing file is an empty
// sequence and is created by the first [Store.Insert].
type Store struct {
	path   string
	codec  Codec
	logger *log.Logger
}

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger used to report degraded lines and ignored documents.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New binds path to the codec for format.
func New(path string, format Format, opts ...Option) *Store {
	s := &Store{
		path:   path,
		codec:  NewCodec(format),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open binds path to the codec selected by its suffix: ".json" is [Structured], ".csv" is [Delimited].
func Open(path string, opts ...Option) (*Store, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return New(path, format, opts...), nil
}

// Path returns the bound file path.
func (s *Store) Path() string { return s.path }

// Format returns the bound encoding.
func (s *Store) Format() Format { return s.codec.Format() }

// Load reads and decodes the file, reporting degraded lines alongside the records.
func (s *Store) Load() (*Decoded, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	decoded, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	for _, d := range decoded.Degraded {
		s.logger.Warn("malformed line, using placeholder", "path", s.path, "line", d.Line, "text", d.Text)
	}
	if decoded.Ignored {
		s.logger.Warn("file is not an array of task objects, treating as empty", "path", s.path)
	}

	return decoded, nil
}

// ReadAll returns every record in file order.
func (s *Store) ReadAll() ([]models.Record, error) {
	decoded, err := s.Load()
	if err != nil {
		return nil, err
	}
	return decoded.Records, nil
}

// Insert adds one record at the end of the file.
//
// Structured files are read, extended and rewritten in full; delimited files get one appended line.
func (s *Store) Insert(task string, done bool) error {
	if err := s.codec.CanEncode(task); err != nil {
		return err
	}

	record := models.NewRecord(task, done)

	switch s.codec.Format() {
	case Delimited:
		return s.appendRecord(record)
	default:
		return s.rewriteWith(record)
	}
}

// List returns the formatted lines of the records passing the done filter.
func (s *Store) List(onlyDone bool) ([]string, error) {
	records, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return formatter.Lines(records, onlyDone), nil
}

// ListTo writes the lines from [Store.List] to w, one per line.
func (s *Store) ListTo(w io.Writer, onlyDone bool) error {
	lines, err := s.List(onlyDone)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", shared.ErrIO, s.path, err)
	}
	return data, nil
}

// rewriteWith appends record to the decoded file and writes the whole document back.
// A decode failure leaves the file untouched.
func (s *Store) rewriteWith(record models.Record) error {
	decoded, err := s.Load()
	if err != nil {
		return err
	}

	data, err := s.codec.Encode(append(decoded.Records, record))
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", shared.ErrIO, s.path, err)
	}
	return nil
}

// appendRecord writes one line at the end of the file without reading the existing records.
//
// If the file does not end in a newline (an interrupted append), one is written first so the new
// record starts on its own line.
func (s *Store) appendRecord(record models.Record) error {
	line, err := s.codec.EncodeLine(record)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", shared.ErrIO, s.path, err)
	}

	if err := writeLine(f, line); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to append to %s: %w", shared.ErrIO, s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", shared.ErrIO, s.path, err)
	}
	return nil
}

func writeLine(f *os.File, line []byte) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}

	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return err
		}
		if last[0] != '\n' {
			line = append([]byte{'\n'}, line...)
		}
	}

	_, err = f.Write(line)
	return err
}
