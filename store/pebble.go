package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// Pebble is a Pebble LSM-tree backed Store for durable local persistence.
// The Store contract has no error channel, so backend failures are logged
// and surfaced as absence (Get) or dropped writes (Set/Delete).
type Pebble struct {
	db     *pebble.DB
	path   string
	logger *zap.Logger
}

// NewPebble creates a Pebble store instance (not yet opened).
func NewPebble(dbPath string, logger *zap.Logger) *Pebble {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pebble{
		path:   dbPath,
		logger: logger,
	}
}

// Init opens the Pebble database.
func (p *Pebble) Init() error {
	opts := &pebble.Options{
		Logger: &pebbleLogger{p.logger},
	}
	db, err := pebble.Open(p.path, opts)
	if err != nil {
		return fmt.Errorf("pebble open %s: %w", p.path, err)
	}
	p.db = db
	p.logger.Info("Pebble store opened", zap.String("path", p.path))
	return nil
}

// Close flushes and closes the database.
func (p *Pebble) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Get returns the value stored at key.
func (p *Pebble) Get(key string) (string, bool) {
	data, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false
	}
	if err != nil {
		p.logger.Warn("pebble get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	defer closer.Close()

	v := make([]byte, len(data))
	copy(v, data)
	return string(v), true
}

// Set stores value at key, overwriting any existing value.
func (p *Pebble) Set(key, value string) {
	if err := p.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		p.logger.Warn("pebble set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes the value at key.
func (p *Pebble) Delete(key string) {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		p.logger.Warn("pebble delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Truncate deletes all stored keys.
func (p *Pebble) Truncate() error {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebble iter: %w", err)
	}
	defer iter.Close()

	var keys [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		k := make([]byte, len(iter.Key()))
		copy(k, iter.Key())
		keys = append(keys, k)
	}
	if err := iter.Error(); err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()
	for _, k := range keys {
		if err := batch.Delete(k, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// pebbleLogger adapts zap.Logger to the pebble.Logger interface.
type pebbleLogger struct {
	z *zap.Logger
}

func (l *pebbleLogger) Infof(format string, args ...any) {
	l.z.Sugar().Infof(format, args...)
}

func (l *pebbleLogger) Fatalf(format string, args ...any) {
	l.z.Sugar().Fatalf(format, args...)
}
