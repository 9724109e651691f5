package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
)

// Run maps the routes, listens on host:port and serves until SIGINT or SIGTERM.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("map handlers: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", srv.host, srv.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.serve(ctx, ln)
}

// serve handles requests on ln until ctx is done, then gives in-flight requests
// shutdownTimeout to finish.
func (srv HTTPServer) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           srv.gin,
		ReadHeaderTimeout: srv.readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "Started server on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		srv.l.Infof(context.Background(), "Shutting down, waiting up to %s for open requests", srv.shutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(context.Background(), "Server shutdown error: %v", err)
		return err
	}
	srv.l.Info(context.Background(), "API server stopped.")
	return nil
}
