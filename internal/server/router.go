package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is the [Router] used by `todox serve`, a thin layer over [http.ServeMux].
type BasicRouter struct {
	mux   *http.ServeMux
	chain []Middleware
	paths []string
}

// NewBasicRouter creates an empty [BasicRouter].
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends middleware. The first middleware added is the outermost.
//
// Routes registered before the call are not affected.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.chain = append(r.chain, middleware...)
}

// Handle serves path with handler for one method. Any other method gets a JSON 405.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.mount(path, r.Apply(methodOnly(method, handler)))
}

// Handler mounts a [Handler] on each of its [Handler.Routes]. The handler checks methods itself.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)
	for _, path := range handler.Routes() {
		r.mount(path, wrapped)
	}
}

// Routes lists the mounted path patterns in mount order.
func (r *BasicRouter) Routes() []string {
	return slices.Clone(r.paths)
}

func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler in the current middleware chain.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	for _, m := range slices.Backward(r.chain) {
		handler = m(handler)
	}
	return handler
}

func (r *BasicRouter) mount(path string, handler http.Handler) {
	r.mux.Handle(path, handler)
	r.paths = append(r.paths, path)
}

func methodOnly(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			WriteMessage(w, http.StatusMethodNotAllowed, "Invalid method")
			return
		}
		handler.ServeHTTP(w, req)
	})
}
