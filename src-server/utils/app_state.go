package utils

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/uptrace/bun"
)

type AppState struct {
	Config      *Config
	MetricChans *Metric

	// closing the app from anywhere
	AppCloseSignalChan chan os.Signal

	connector *Connector

	mu                    sync.Mutex
	gracefulShutdownChans []chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
	}

	// env
	as.Config = NewConfig()

	// database handle, established lazily on first use
	as.connector = NewConnector(as.Config.GetSqlitePath())

	return as
}

// DB returns the shared database handle, connecting on first use. Concurrent
// callers during the initial connect await the same attempt; a failed attempt
// is retried on the next call.
func (as *AppState) DB(ctx context.Context) (*bun.DB, error) {
	return as.connector.Acquire(ctx)
}

// CreateGracefulShutdownChan returns a channel that gets closed when the app
// is shutting down. Long-running goroutines select on it to clean up.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	ch := make(chan struct{})
	as.mu.Lock()
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	as.mu.Unlock()
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.mu.Lock()
	chans := as.gracefulShutdownChans
	as.gracefulShutdownChans = nil
	as.mu.Unlock()
	for _, ch := range chans {
		close(ch)
	}
	slog.Debug("graceful shutdown channels closed", "count", len(chans))
}
