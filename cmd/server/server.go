package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
)

// newHTTPServer configures the HTTP server from the server settings.
func (app *application) newHTTPServer(router http.Handler) *http.Server {
	cfg := app.config.Server
	return &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  2 * cfg.ReadTimeout,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}
}

// startHTTPServer serves router until ctx is canceled, then shuts down
// gracefully within the configured shutdown timeout.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := app.newHTTPServer(router)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
