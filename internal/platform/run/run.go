package run

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds Graceful.
const ShutdownTimeout = 10 * time.Second

type Runner struct {
	Logger *zap.Logger
}

func New(log *zap.Logger) *Runner {
	return &Runner{Logger: log}
}

// WithSignals runs start until it returns or SIGINT/SIGTERM arrives and
// converts the outcome into a process exit code.
func (r *Runner) WithSignals(start func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- start(ctx)
	}()

	select {
	case <-ctx.Done():
		r.Logger.Info("shutdown signal received")
		return 0
	case err := <-errCh:
		return r.exitCode(err)
	}
}

func (r *Runner) exitCode(err error) int {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return 0
	}
	r.Logger.Error("service exited with error", zap.Error(err))
	return 1
}

// Graceful calls shutdown with a fresh context bounded by ShutdownTimeout.
func (r *Runner) Graceful(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		r.Logger.Warn("graceful shutdown", zap.Error(err))
	}
}

func Exit(code int) {
	os.Exit(code)
}
