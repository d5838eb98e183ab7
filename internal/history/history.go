// Package history keeps the bounded list of past analyses.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/cv-analyzer/internal/api"
)

const (
	// DefaultKey is the storage key holding the serialized history.
	DefaultKey = "analysisHistory"
	// DefaultLimit is the number of entries kept.
	DefaultLimit = 20
)

// ErrNotFound is returned by a KV when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Entry is one archived analysis.
type Entry struct {
	Date             time.Time           `json:"date" yaml:"date"`
	Plan             string              `json:"plan" yaml:"plan"`
	SelectedIndustry string              `json:"selectedIndustry" yaml:"selectedIndustry"`
	Results          *api.AnalysisResult `json:"results" yaml:"results"`
}

// Store is the history contract. The cap is enforced by the store, not by callers.
type Store interface {
	Append(ctx context.Context, entry Entry) ([]Entry, error)
	LoadAll(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

// KV is a string key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KVStore serializes the whole history as one JSON array under a single key.
type KVStore struct {
	kv    KV
	key   string
	limit int
}

var _ Store = (*KVStore)(nil)

// NewKVStore creates a store. Empty key and non-positive limit use the defaults.
func NewKVStore(kv KV, key string, limit int) *KVStore {
	if key == "" {
		key = DefaultKey
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &KVStore{kv: kv, key: key, limit: limit}
}

// Append prepends entry and evicts the oldest entries beyond the limit.
// The read-modify-write is not atomic: the last writer wins.
func (s *KVStore) Append(ctx context.Context, entry Entry) ([]Entry, error) {
	existing, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	updated := make([]Entry, 0, len(existing)+1)
	updated = append(updated, entry)
	updated = append(updated, existing...)
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return nil, fmt.Errorf("write history: %w", err)
	}

	return updated, nil
}

// LoadAll returns the entries newest first. A missing key is an empty history.
func (s *KVStore) LoadAll(ctx context.Context) ([]Entry, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if raw == "" {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history under %q: %w", s.key, err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Clear removes the whole history.
func (s *KVStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
