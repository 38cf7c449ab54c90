package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/todox/internal/shared"
)

type pingHandler struct{}

func (pingHandler) Routes() []string { return []string{"/ping", "/ping/"} }

func (pingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteMessage(w, http.StatusOK, "pong %s", r.Method)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m Message
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return m.Message
}

func TestBasicRouter(t *testing.T) {
	t.Run("Handler registers every route", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(pingHandler{})

		for _, path := range []string{"/ping", "/ping/"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", path, rec.Code)
			}
			if got := decodeMessage(t, rec); got != "pong GET" {
				t.Errorf("%s: unexpected message %q", path, got)
			}
		}

		if got := router.Routes(); len(got) != 2 {
			t.Errorf("expected 2 routes, got %v", got)
		}
	})

	t.Run("Handle filters methods", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodPost, "/only-post", pingHandler{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/only-post", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if got := decodeMessage(t, rec); got != "Invalid method" {
			t.Errorf("unexpected message %q", got)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-post", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handler(pingHandler{})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		if strings.Join(order, ",") != "first,second" {
			t.Errorf("unexpected middleware order: %v", order)
		}
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	router := NewBasicRouter()
	router.Use(Logging(shared.NewLogger(&buf)))
	router.Handle(http.MethodGet, "/ping", pingHandler{})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/ping", nil))

	out := buf.String()
	for _, want := range []string{"request", "DELETE", "/ping", "405"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects after burst", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(RateLimit(0.001, 2))
		router.Handler(pingHandler{})

		codes := make([]int, 0, 3)
		for range 3 {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			codes = append(codes, rec.Code)
		}

		want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
		for i := range want {
			if codes[i] != want[i] {
				t.Errorf("request %d: expected %d, got %d", i+1, want[i], codes[i])
			}
		}
	})

	t.Run("disabled", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(RateLimit(0, 0))
		router.Handler(pingHandler{})

		for i := range 50 {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
			}
		}
	})
}

func TestServe(t *testing.T) {
	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: NewBasicRouter()}

		done := make(chan error, 1)
		go func() { done <- Serve(ctx, srv, shared.NewLogger(&bytes.Buffer{})) }()

		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("Serve() error = %v", err)
			}
		case <-time.After(ShutdownTimeout + time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})

	t.Run("reports listen errors", func(t *testing.T) {
		srv := &http.Server{Addr: "127.0.0.1:-1", Handler: NewBasicRouter()}

		err := Serve(context.Background(), srv, shared.NewLogger(&bytes.Buffer{}))
		if err == nil {
			t.Fatal("expected listen error")
		}
	})
}
