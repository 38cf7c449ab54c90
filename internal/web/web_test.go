package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/server"
	"github.com/desertthunder/todox/internal/store"
	th "github.com/desertthunder/todox/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, name string) (*TodoHandler, *store.Store) {
	t.Helper()
	s, err := store.Open(th.TempPath(t, name))
	require.NoError(t, err)

	h, err := NewTodoHandler(s, nil)
	require.NoError(t, err)
	return h, s
}

func newRouter(h *TodoHandler) *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Handler(h)
	return router
}

func do(t *testing.T, router http.Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, "/todos", strings.NewReader(body)))
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m server.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m.Message
}

func TestTodoHandler(t *testing.T) {
	for _, name := range []string{"todos.json", "todos.csv"} {
		t.Run(name, func(t *testing.T) {
			t.Run("empty list", func(t *testing.T) {
				h, _ := newHandler(t, name)
				rec := do(t, newRouter(h), http.MethodGet, "")

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.JSONEq(t, `[]`, rec.Body.String())
			})

			t.Run("insert then list", func(t *testing.T) {
				h, s := newHandler(t, name)
				router := newRouter(h)

				rec := do(t, router, http.MethodPost, `{"task":"Buy milk"}`)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				assert.Equal(t, "inserted", message(t, rec))

				rec = do(t, router, http.MethodPost, `{"task":"Pay rent","done":true}`)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

				rec = do(t, router, http.MethodGet, "")
				require.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `[{"task":"Buy milk","done":false},{"task":"Pay rent","done":true}]`, rec.Body.String())

				records, err := s.ReadAll()
				require.NoError(t, err)
				assert.Equal(t, []models.Record{{Task: "Buy milk"}, {Task: "Pay rent", Done: true}}, records)
			})
		})
	}

	t.Run("rejects invalid bodies", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			want string
		}{
			{name: "not json", body: `{"task":`, want: "not valid JSON"},
			{name: "missing task", body: `{"done":true}`, want: "task"},
			{name: "empty task", body: `{"task":""}`, want: "task"},
			{name: "task not a string", body: `{"task":42}`, want: "task"},
			{name: "done not a boolean", body: `{"task":"x","done":"yes"}`, want: "done"},
			{name: "extra property", body: `{"task":"x","priority":1}`, want: "priority"},
			{name: "array", body: `[{"task":"x"}]`, want: "ERROR"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h, s := newHandler(t, "todos.json")
				rec := do(t, newRouter(h), http.MethodPost, tt.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				msg := message(t, rec)
				assert.True(t, strings.HasPrefix(msg, "ERROR: "), msg)
				assert.Contains(t, msg, tt.want)
				th.AssertFileNotExists(t, s.Path())
			})
		}
	})

	t.Run("line breaks are rejected for csv", func(t *testing.T) {
		h, _ := newHandler(t, "todos.csv")
		rec := do(t, newRouter(h), http.MethodPost, `{"task":"two\nlines"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store errors are 500", func(t *testing.T) {
		h, s := newHandler(t, "todos.json")
		th.MustWriteFile(t, s.Path(), `[{"task":`)
		router := newRouter(h)

		rec := do(t, router, http.MethodGet, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, strings.HasPrefix(message(t, rec), "ERROR: "))

		rec = do(t, router, http.MethodPost, `{"task":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("other methods", func(t *testing.T) {
		h, _ := newHandler(t, "todos.json")
		for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
			rec := do(t, newRouter(h), method, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
			assert.Equal(t, "Invalid method", message(t, rec))
		}
	})

	t.Run("concurrent inserts are serialised", func(t *testing.T) {
		h, s := newHandler(t, "todos.json")
		router := newRouter(h)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				do(t, router, http.MethodPost, `{"task":"x"}`)
			}()
		}
		wg.Wait()

		records, err := s.ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 20)
	})
}

func TestTodoHandler_ReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	s, err := store.Open(filepath.Join(dir, "todos.csv"))
	require.NoError(t, err)
	h, err := NewTodoHandler(s, nil)
	require.NoError(t, err)

	rec := do(t, newRouter(h), http.MethodPost, `{"task":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
