package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const ExitCodeMainError = 1

const shutdownTimeout = 10 * time.Second

func NewLogger(out io.Writer, level string) (*slog.Logger, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log-level `%s`: %w", level, InvalidConfigError)
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel})), nil
}

func RunApp(ctx context.Context, config Config, logger *slog.Logger) error {
	listener, err := net.Listen("tcp", config.ListenAddress)
	if err != nil {
		return err
	}

	return ServeApp(ctx, listener, config, logger)
}

// ServeApp serves the API on listener until ctx is cancelled, then drains
// in-flight requests and pending webhooks.
func ServeApp(ctx context.Context, listener net.Listener, config Config, logger *slog.Logger) error {
	serviceContainer, err := BuildServiceContainer(config, logger)
	if err != nil {
		_ = listener.Close()
		return err
	}

	serviceContainer.WebhookDispatcher.Start()
	defer serviceContainer.WebhookDispatcher.Close()

	server := &http.Server{
		Handler:           serviceContainer.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	served := make(chan error, 1)
	go func() {
		served <- server.Serve(listener)
	}()

	logger.Info("listening", "address", listener.Addr().String())

	select {
	case err = <-served:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err = <-served; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
