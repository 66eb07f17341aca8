package repository

import (
	"context"
	"database/sql"
	"sync"
)

// Writer serializes all mutating storage operations through a single mutex
// over a long-lived connection pool. Concurrent pipeline invocations share
// one Writer, so inserts are strictly ordered and never interleave.
// Reads go directly through the pool and are not serialized.
type Writer struct {
	db *sql.DB
	mu sync.Mutex
}

// NewWriter creates a Writer over the given connection pool.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// DB returns the underlying connection pool for read-only access.
func (w *Writer) DB() *sql.DB {
	return w.db
}

// InsertOne executes an INSERT ... RETURNING statement under the writer lock
// and scans the returned row.
func InsertOne[T any](ctx context.Context, w *Writer, query string, args []any, scan ScanFunc[T]) (T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return QueryOne(ctx, w.db, query, args, scan)
}
