package utils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Connector hands out a single cached *bun.DB for the whole process. The
// handle is opened lazily on the first Acquire; concurrent callers join the
// in-flight attempt instead of opening duplicates. A failed attempt is not
// cached: the next Acquire starts over.
type Connector struct {
	open func() (*bun.DB, error)

	mu       sync.Mutex
	db       *bun.DB
	inflight *connAttempt
}

type connAttempt struct {
	done chan struct{}
	db   *bun.DB
	err  error
}

func NewConnector(sqlitePath string) *Connector {
	return &Connector{
		open: func() (*bun.DB, error) {
			dsn := sqlitePath
			if !strings.Contains(dsn, "?") {
				dsn += "?mode=rwc"
			}
			rawDB, err := sql.Open(sqliteshim.ShimName, dsn)
			if err != nil {
				return nil, fmt.Errorf("Connector: cannot open sqlite database: %w", err)
			}
			if err := rawDB.Ping(); err != nil {
				rawDB.Close()
				return nil, fmt.Errorf("Connector: cannot ping sqlite database: %w", err)
			}
			rawDB.SetMaxIdleConns(8)

			bunDB := bun.NewDB(rawDB, sqlitedialect.New())
			bunDB.AddQueryHook(bundebug.NewQueryHook(
				bundebug.FromEnv("BUNDEBUG"),
			))
			return bunDB, nil
		},
	}
}

// NewConnectorWithOpener swaps the sqlite opener for a custom one. Tests use
// this to simulate failing stores.
func NewConnectorWithOpener(open func() (*bun.DB, error)) *Connector {
	return &Connector{open: open}
}

// Acquire returns the cached database handle, opening it if needed. Callers
// arriving while a connection attempt is in flight wait for that same attempt.
func (c *Connector) Acquire(ctx context.Context) (*bun.DB, error) {
	c.mu.Lock()
	if c.db != nil {
		db := c.db
		c.mu.Unlock()
		return db, nil
	}

	if c.inflight == nil {
		attempt := &connAttempt{done: make(chan struct{})}
		c.inflight = attempt
		go func() {
			attempt.db, attempt.err = c.open()
			c.mu.Lock()
			if attempt.err == nil {
				c.db = attempt.db
			}
			c.inflight = nil
			c.mu.Unlock()
			close(attempt.done)
		}()
	}
	attempt := c.inflight
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-attempt.done:
		return attempt.db, attempt.err
	}
}
