// Package server provides HTTP routing, middleware and a graceful serve loop for the todo web service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it was added to the router; the first one sees the request first.
//
// [BasicRouter] mounts handlers on an [http.ServeMux]. [BasicRouter.Handle] adds a method check.
//
// # Middleware
//
//   - [Logging] : one structured log line per request
//   - [RateLimit] : token bucket shared by all clients, 429 when empty
//
// # Handler Interface
//
// A [Handler] is an [http.Handler] that also names the paths it serves, so one type can own several routes.
//
// # Responses
//
// [WriteJSON] and [WriteMessage] write JSON bodies. Errors and acknowledgements use the [Message] shape,
// {"message": "..."}.
package server
