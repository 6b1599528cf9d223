package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrMiss is returned when a key is not present in the cache.
var ErrMiss = errors.New("cache miss")

// DB wraps BadgerDB for local caching of rendered content
type DB struct {
	*badger.DB
}

// New creates a new BadgerDB instance
func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger's logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthCheck checks if the database is healthy
func (db *DB) HealthCheck() error {
	return db.View(func(txn *badger.Txn) error {
		return nil
	})
}

// RenderCache stores rendered HTML keyed by content identity. Keys embed
// the source's last-updated timestamp, so a content edit naturally misses
// and stale entries age out via TTL.
type RenderCache struct {
	db  *DB
	ttl time.Duration
}

// NewRenderCache creates a render cache with the given entry TTL
func NewRenderCache(db *DB, ttl time.Duration) *RenderCache {
	return &RenderCache{db: db, ttl: ttl}
}

func renderKey(kind, id string, updatedAt time.Time) []byte {
	return []byte(fmt.Sprintf("render:%s:%s:%d", kind, id, updatedAt.Unix()))
}

// Get retrieves rendered HTML from the cache
func (c *RenderCache) Get(ctx context.Context, kind, id string, updatedAt time.Time) (string, error) {
	var html string

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(renderKey(kind, id, updatedAt))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			html = string(val)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}

	return html, nil
}

// Set stores rendered HTML in the cache
func (c *RenderCache) Set(ctx context.Context, kind, id string, updatedAt time.Time, html string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(renderKey(kind, id, updatedAt), []byte(html)).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Invalidate removes all cached renderings for a piece of content
func (c *RenderCache) Invalidate(ctx context.Context, kind, id string) error {
	prefix := []byte(fmt.Sprintf("render:%s:%s:", kind, id))

	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
