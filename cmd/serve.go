package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/todox/internal/server"
	"github.com/desertthunder/todox/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve exposes the source file at /todos until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore(cmd, "source")
	if err != nil {
		return err
	}

	handler, err := web.NewTodoHandler(s, r.logger)
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = port
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger), server.RateLimit(cfg.RateLimit, cfg.Burst))
	router.Handler(handler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.logger.Info("serving tasks", "path", s.Path(), "format", s.Format(), "addr", srv.Addr)
	r.writePlain("Serving %s on http://%s/todos\n", s.Path(), srv.Addr)

	if err := server.Serve(ctx, srv, r.logger); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
