package utils_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"devents/src-server/utils"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func openMemoryDB(t *testing.T) (*bun.DB, error) {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { db.Close() })
	return bun.NewDB(db, sqlitedialect.New()), nil
}

func TestConnectorCachesHandle(t *testing.T) {
	var openCount atomic.Int32
	connector := utils.NewConnectorWithOpener(func() (*bun.DB, error) {
		openCount.Add(1)
		return openMemoryDB(t)
	})

	first, err := connector.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := connector.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same cached handle")
	}
	if openCount.Load() != 1 {
		t.Error("expected a single open, got", openCount.Load())
	}
}

func TestConnectorRetriesAfterFailure(t *testing.T) {
	var openCount atomic.Int32
	connector := utils.NewConnectorWithOpener(func() (*bun.DB, error) {
		if openCount.Add(1) == 1 {
			return nil, errors.New("store unreachable")
		}
		return openMemoryDB(t)
	})

	if _, err := connector.Acquire(context.Background()); err == nil {
		t.Fatal("expected first attempt to fail")
	}

	// the failed attempt must not be cached
	db, err := connector.Acquire(context.Background())
	if err != nil {
		t.Fatal("retry after failure should succeed:", err)
	}
	if db == nil {
		t.Fatal("no handle returned")
	}
	if openCount.Load() != 2 {
		t.Error("expected two open attempts, got", openCount.Load())
	}
}

func TestConnectorDeduplicatesConcurrentAcquires(t *testing.T) {
	var openCount atomic.Int32
	connector := utils.NewConnectorWithOpener(func() (*bun.DB, error) {
		openCount.Add(1)
		time.Sleep(50 * time.Millisecond)
		return openMemoryDB(t)
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := connector.Acquire(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if openCount.Load() != 1 {
		t.Error("concurrent acquires opened duplicates:", openCount.Load())
	}
}

func TestConnectorRespectsContext(t *testing.T) {
	connector := utils.NewConnectorWithOpener(func() (*bun.DB, error) {
		time.Sleep(time.Second)
		return nil, errors.New("store unreachable")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := connector.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected deadline error, got", err)
	}
}
