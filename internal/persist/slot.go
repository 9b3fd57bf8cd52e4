// Package persist bridges in-memory collections and a storage.Store.
//
// A Slot binds one storage key to a JSON array. Load is used once, before the
// owning store is constructed, and never fails: a missing key, a read error
// or a malformed document all hydrate to an empty collection, with the
// problem logged. Save serialises the collection (never derived totals) and
// hands it to a Writer, which performs the write off the caller's goroutine.
package persist

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/storage"
)

// Config wires a Slot to its collaborators. Store is required. A nil Writer
// makes Save write synchronously; a nil Validator skips entry validation.
type Config struct {
	Store     storage.Store
	Writer    *Writer
	Logger    *zap.Logger
	Validator *validator.Validate
}

// Slot persists a []T under a single key.
type Slot[T any] struct {
	key string
	cfg Config
}

// NewSlot returns a slot for key.
func NewSlot[T any](key string, cfg Config) *Slot[T] {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Slot[T]{key: key, cfg: cfg}
}

// Key returns the storage key.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load reads the stored collection. Entries that fail to decode or validate
// are dropped individually; a document that is not a JSON array yields an
// empty collection.
func (s *Slot[T]) Load() []T {
	logger := s.cfg.Logger.With(zap.String("key", s.key))

	raw, ok, err := s.cfg.Store.Get(s.key)
	if err != nil {
		logger.Warn("hydrate read failed, starting empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("hydrate parse failed, starting empty", zap.Error(err))
		return nil
	}

	items := make([]T, 0, len(entries))
	for i, entry := range entries {
		var item T
		if err := json.Unmarshal(entry, &item); err != nil {
			logger.Warn("dropping undecodable entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		if s.cfg.Validator != nil {
			if err := s.cfg.Validator.Struct(item); err != nil {
				logger.Warn("dropping invalid entry", zap.Int("index", i), zap.Error(err))
				continue
			}
		}
		items = append(items, item)
	}
	logger.Debug("hydrated", zap.Int("items", len(items)))
	return items
}

// Save replaces the stored collection with items.
func (s *Slot[T]) Save(items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.cfg.Logger.Warn("persist encode failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	if s.cfg.Writer != nil {
		s.cfg.Writer.Enqueue(s.key, string(data))
		return
	}
	if err := s.cfg.Store.Set(s.key, string(data)); err != nil {
		s.cfg.Logger.Warn("persist write failed", zap.String("key", s.key), zap.Error(err))
	}
}
