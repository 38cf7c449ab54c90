// Package web serves a task file over HTTP.
//
// # Routes
//
//	GET  /todos → 200, JSON array of {"task", "done"} in file order
//	POST /todos → 200 {"message":"inserted"} after appending one record
//
// Other methods get 405 {"message":"Invalid method"}.
//
// # Validation
//
// POST bodies are checked against an embedded JSON schema (todo.schema.json) before touching the store:
// task is a required non-empty string, done an optional boolean, and no other keys are allowed.
// Validation failures are 400; store failures are 500. Both carry {"message":"ERROR: ..."}.
//
// # Concurrency
//
// HTTP handlers run concurrently but a [store.Store] expects one caller at a time, so [TodoHandler]
// serialises every store call behind a mutex.
package web

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/server"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/desertthunder/todox/internal/store"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todo.schema.json
var todoSchema []byte

const schemaURL = "todo.schema.json"

// MaxBodyBytes caps the size of a POST body.
const MaxBodyBytes = 1 << 20

// TodoHandler implements [server.Handler] for one task file.
type TodoHandler struct {
	mu     sync.Mutex
	store  *store.Store
	schema *jsonschema.Schema
	logger *log.Logger
}

// NewTodoHandler binds a handler to s and compiles the request schema.
func NewTodoHandler(s *store.Store, logger *log.Logger) (*TodoHandler, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TodoHandler{store: s, schema: schema, logger: logger}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(todoSchema)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *TodoHandler) Routes() []string {
	return []string{"/todos"}
}

// ServeHTTP dispatches on method.
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w)
	case http.MethodPost:
		h.insert(w, r)
	default:
		server.WriteMessage(w, http.StatusMethodNotAllowed, "Invalid method")
	}
}

func (h *TodoHandler) list(w http.ResponseWriter) {
	h.mu.Lock()
	records, err := h.store.ReadAll()
	h.mu.Unlock()

	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	server.WriteJSON(w, http.StatusOK, records)
}

func (h *TodoHandler) insert(w http.ResponseWriter, r *http.Request) {
	record, err := h.decode(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	err = h.store.Insert(record.Task, record.Done)
	h.mu.Unlock()

	switch {
	case errors.Is(err, shared.ErrInvalidArgument):
		h.fail(w, http.StatusBadRequest, err)
	case err != nil:
		h.fail(w, http.StatusInternalServerError, err)
	default:
		h.logger.Debug("inserted record", "task", record.Task, "done", record.Done)
		server.WriteMessage(w, http.StatusOK, "inserted")
	}
}

// decode parses and validates a POST body.
func (h *TodoHandler) decode(body io.Reader) (models.Record, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: failed to read body: %w", shared.ErrInvalidInput, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Record{}, fmt.Errorf("%w: body is not valid JSON", shared.ErrInvalidInput)
	}

	if err := h.schema.Validate(doc); err != nil {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, validationMessage(err))
	}

	var record models.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	return record, nil
}

func (h *TodoHandler) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", h.store.Path(), "error", err)
	}
	server.WriteMessage(w, status, "ERROR: %v", err)
}

// validationMessage returns the first leaf cause of a schema error as "path: message".
func validationMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return loc + ": " + ve.Message
}
