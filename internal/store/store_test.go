package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
	th "github.com/desertthunder/todox/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRecords covers commas, quotes, empty text and duplicates.
func sampleRecords() []models.Record {
	return []models.Record{
		{Task: "Buy milk", Done: false},
		{Task: "Pay rent", Done: true},
		{Task: "call mom, then dad", Done: false},
		{Task: `read "Dune"`, Done: true},
		{Task: "", Done: false},
		{Task: "Buy milk", Done: true},
	}
}

func openStore(t *testing.T, name string) *Store {
	t.Helper()
	s, err := Open(th.TempPath(t, name))
	require.NoError(t, err)
	return s
}

func insertAll(t *testing.T, s *Store, records []models.Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, s.Insert(r.Task, r.Done))
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("todos.json")
	require.NoError(t, err)
	assert.Equal(t, Structured, s.Format())
	assert.Equal(t, "todos.json", s.Path())

	s, err = Open("todos.csv")
	require.NoError(t, err)
	assert.Equal(t, Delimited, s.Format())

	_, err = Open("todos.yaml")
	require.ErrorIs(t, err, shared.ErrUnsupportedFormat)
}

func TestStore(t *testing.T) {
	for _, name := range []string{"todos.json", "todos.csv"} {
		t.Run(name, func(t *testing.T) {
			t.Run("missing file is empty", func(t *testing.T) {
				s := openStore(t, name)

				records, err := s.ReadAll()
				require.NoError(t, err)
				assert.Empty(t, records)

				lines, err := s.List(false)
				require.NoError(t, err)
				assert.Empty(t, lines)

				th.AssertFileNotExists(t, s.Path())
			})

			t.Run("first insert creates the file", func(t *testing.T) {
				s := openStore(t, name)
				require.NoError(t, s.Insert("Buy milk", false))

				th.AssertFileExists(t, s.Path())
				records, err := s.ReadAll()
				require.NoError(t, err)
				assert.Equal(t, []models.Record{{Task: "Buy milk"}}, records)
			})

			t.Run("round trip preserves order and flags", func(t *testing.T) {
				s := openStore(t, name)
				insertAll(t, s, sampleRecords())

				records, err := s.ReadAll()
				require.NoError(t, err)
				assert.Equal(t, sampleRecords(), records)

				lines, err := s.List(false)
				require.NoError(t, err)
				assert.Equal(t, []string{
					"- [TODO] Buy milk",
					"- [DONE] Pay rent",
					"- [TODO] call mom, then dad",
					`- [DONE] read "Dune"`,
					"- [TODO] ",
					"- [DONE] Buy milk",
				}, lines)
			})

			t.Run("done filter preserves relative order", func(t *testing.T) {
				s := openStore(t, name)
				insertAll(t, s, sampleRecords())

				lines, err := s.List(true)
				require.NoError(t, err)
				assert.Equal(t, []string{
					"- [DONE] Pay rent",
					`- [DONE] read "Dune"`,
					"- [DONE] Buy milk",
				}, lines)
			})

			t.Run("list is idempotent", func(t *testing.T) {
				s := openStore(t, name)
				insertAll(t, s, sampleRecords())

				var first, second bytes.Buffer
				require.NoError(t, s.ListTo(&first, false))
				require.NoError(t, s.ListTo(&second, false))
				assert.Equal(t, first.String(), second.String())
				assert.Equal(t, 6, strings.Count(first.String(), "\n"))
			})

			t.Run("ListTo reports sink errors", func(t *testing.T) {
				s := openStore(t, name)
				require.NoError(t, s.Insert("Buy milk", false))

				err := s.ListTo(&th.FWriter{}, false)
				require.Error(t, err)
			})

			t.Run("missing directory is an io error", func(t *testing.T) {
				s, err := Open(filepath.Join(t.TempDir(), "missing", name))
				require.NoError(t, err)

				err = s.Insert("Buy milk", false)
				require.ErrorIs(t, err, shared.ErrIO)
			})

			t.Run("unreadable path is an io error", func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), name)
				require.NoError(t, os.Mkdir(dir, 0755))

				_, err := New(dir, mustFormat(t, name)).ReadAll()
				require.ErrorIs(t, err, shared.ErrIO)
			})
		})
	}
}

func mustFormat(t *testing.T, name string) Format {
	t.Helper()
	f, err := FormatForPath(name)
	require.NoError(t, err)
	return f
}

func TestStructuredStore(t *testing.T) {
	t.Run("insert rewrites a single document", func(t *testing.T) {
		s := openStore(t, "todos.json")
		require.NoError(t, s.Insert("Buy milk", false))
		require.NoError(t, s.Insert("Pay rent", true))

		content := th.MustReadFile(t, s.Path())
		assert.True(t, strings.HasPrefix(content, "["))
		assert.Equal(t, 1, strings.Count(content, "["))
		assert.JSONEq(t, `[{"task":"Buy milk","done":false},{"task":"Pay rent","done":true}]`, content)
	})

	t.Run("corrupt file fails and is left untouched", func(t *testing.T) {
		s := openStore(t, "todos.json")
		th.MustWriteFile(t, s.Path(), `[{"task": "half`)

		err := s.Insert("Buy milk", false)
		require.ErrorIs(t, err, shared.ErrParse)
		assert.Equal(t, `[{"task": "half`, th.MustReadFile(t, s.Path()))

		_, err = s.List(false)
		require.ErrorIs(t, err, shared.ErrParse)
	})

	t.Run("wrong shape lists as empty", func(t *testing.T) {
		s := openStore(t, "todos.json")
		th.MustWriteFile(t, s.Path(), `{"task":"x","done":true}`)

		lines, err := s.List(false)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("existing keys in any order", func(t *testing.T) {
		s := openStore(t, "todos.json")
		th.MustWriteFile(t, s.Path(), `[{"done":true,"task":"Clean"}]`)
		require.NoError(t, s.Insert("Buy milk", false))

		records, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []models.Record{{Task: "Clean", Done: true}, {Task: "Buy milk"}}, records)
	})
}

func TestDelimitedStore(t *testing.T) {
	t.Run("concrete scenario", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		require.NoError(t, s.Insert("Buy milk", false))
		require.NoError(t, s.Insert("Pay rent", true))

		var out bytes.Buffer
		require.NoError(t, s.ListTo(&out, true))
		assert.Equal(t, "- [DONE] Pay rent\n", out.String())

		assert.Equal(t, "\"Buy milk\",false\n\"Pay rent\",true\n", th.MustReadFile(t, s.Path()))
	})

	t.Run("insert appends without reading", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		// append never parses existing lines
		th.MustWriteFile(t, s.Path(), "garbage\n")
		require.NoError(t, s.Insert("Task A", true))

		assert.Equal(t, "garbage\n\"Task A\",true\n", th.MustReadFile(t, s.Path()))
	})

	t.Run("lenient read", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		th.MustWriteFile(t, s.Path(), "\"Task A\",true\ngarbage\n")

		records, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []models.Record{{Task: "Task A", Done: true}, {Task: "Unknown Task"}}, records)

		decoded, err := s.Load()
		require.NoError(t, err)
		require.Len(t, decoded.Degraded, 1)
		assert.Equal(t, 2, decoded.Degraded[0].Line)
	})

	t.Run("interrupted append is repaired on next insert", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		th.MustWriteFile(t, s.Path(), "\"a\",true\n\"interrupt")
		require.NoError(t, s.Insert("b", false))

		records, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []models.Record{
			{Task: "a", Done: true},
			{Task: UnknownTask},
			{Task: "b"},
		}, records)
	})

	t.Run("rejects line breaks", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		err := s.Insert("two\nlines", false)
		require.ErrorIs(t, err, shared.ErrInvalidArgument)
		th.AssertFileNotExists(t, s.Path())
	})

	t.Run("legacy unquoted lines", func(t *testing.T) {
		s := openStore(t, "todos.csv")
		th.MustWriteFile(t, s.Path(), "Buy milk,false\nPay rent,true\n")

		lines, err := s.List(true)
		require.NoError(t, err)
		assert.Equal(t, []string{"- [DONE] Pay rent"}, lines)
	})
}
