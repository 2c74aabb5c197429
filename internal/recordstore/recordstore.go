// Package recordstore implements the dual-store synchronization pattern
// shared by journal entries, health samples, habits and habit completions:
// prefer the remote store when it is reachable and non-empty, fall back to
// the local cache otherwise, and mirror every write into both.
//
// The strategy is best effort. There is no conflict-free merge and no
// multi-device convergence guarantee; the one hardening over a naive
// read-modify-write is that writes for one (owner, domain) are serialized
// behind the store's lock, so two rapid writes in one process cannot both
// act on a stale snapshot.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/logger"
)

// Remote is the canonical record service for one entity family.
type Remote[T any] interface {
	List(ctx context.Context, ownerID string) ([]T, error)
	Insert(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, rec T) error
}

// Descriptor binds the generic store to one entity family.
type Descriptor[T any] struct {
	// Domain names the entity family in logs.
	Domain string

	// CacheKey maps an owner id to this family's cache key. An empty owner
	// id is anonymous mode.
	CacheKey func(ownerID string) string

	// ID returns the record's identity. For families without a server id
	// this is the natural key itself.
	ID func(rec T) string

	// NaturalKey returns the upsert key: the calendar date for entries and
	// samples, habit+day for completions.
	NaturalKey func(rec T) string

	// Fingerprint produces a content hash used to absorb legacy duplicate
	// cache writes whose ids differ but whose payloads match.
	Fingerprint func(rec T) string

	// Touch refreshes the record's update timestamp on a local-only merge.
	Touch func(rec *T, now time.Time)

	// SetID assigns a synthesized id on a local-only insert when the record
	// has none. Nil for families keyed purely by natural key.
	SetID func(rec *T, id string)

	// Encode and Decode override the cache wire shape for this family. Nil
	// means a plain JSON array; health samples use a date-keyed object.
	Encode func(records []T) ([]byte, error)
	Decode func(data []byte) ([]T, error)
}

// Store holds the merged in-memory view of one (owner, domain) collection
// and keeps the cache a complete mirror of it after every write.
type Store[T any] struct {
	mu     sync.Mutex
	remote Remote[T]
	cache  cache.Store
	desc   Descriptor[T]
	now    func() time.Time
}

func New[T any](remote Remote[T], c cache.Store, desc Descriptor[T]) *Store[T] {
	return &Store[T]{
		remote: remote,
		cache:  c,
		desc:   desc,
		now:    time.Now,
	}
}

// SetClock overrides the store's clock. Test hook.
func (s *Store[T]) SetClock(now func() time.Time) {
	s.now = now
}

// Load returns the current collection for an owner.
//
// With an owner id it attempts the remote first: a non-empty result is
// authoritative and overwrites the cache; an empty result or a classified
// connectivity failure falls through to the cache. A logical remote failure
// is returned alongside the cached records so the caller still has something
// to render. Without an owner id the remote is skipped entirely.
func (s *Store[T]) Load(ctx context.Context, ownerID string) ([]T, error) {
	if ownerID == "" {
		return s.readCache(ownerID)
	}

	records, err := s.remote.List(ctx, ownerID)
	if err == nil && len(records) > 0 {
		if werr := s.writeCache(ownerID, records); werr != nil {
			logger.Warn("Failed to mirror remote records into cache", "domain", s.desc.Domain, "error", werr)
		}
		return records, nil
	}

	if err != nil {
		if errors.IsConnectivity(err) {
			logger.Warn("Remote fetch failed, serving cache", "domain", s.desc.Domain, "error", err)
			err = nil
		} else {
			logger.Error("Remote fetch failed", "domain", s.desc.Domain, "error", err)
		}
	}
	// Remote empty or unreachable: an empty account is indistinguishable
	// from an unsynced one, so prefer not to erase local-only data.

	cached, cerr := s.readCache(ownerID)
	if cerr != nil {
		return nil, cerr
	}
	return cached, err
}

// Upsert writes one record by its natural key. merge combines an existing
// record with the incoming partial write; it is only invoked when a record
// with the same natural key already exists.
//
// With an owner id the remote is written first, and its returned row replaces
// the local copy. A connectivity failure degrades to a local-only write; any
// other remote failure abandons the write. The entire collection is
// re-serialized into the cache on every successful path.
func (s *Store[T]) Upsert(ctx context.Context, ownerID string, incoming T, merge func(existing, incoming T) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	collection, err := s.readCache(ownerID)
	if err != nil {
		return zero, err
	}

	key := s.desc.NaturalKey(incoming)
	existingIdx := -1
	for i, rec := range collection {
		if s.desc.NaturalKey(rec) == key {
			existingIdx = i
			break
		}
	}

	if ownerID != "" {
		var persisted T
		var remoteErr error
		if existingIdx >= 0 {
			merged := merge(collection[existingIdx], incoming)
			persisted, remoteErr = s.remote.Update(ctx, merged)
		} else {
			persisted, remoteErr = s.remote.Insert(ctx, incoming)
		}

		if remoteErr == nil {
			collection = s.replaceOrPrepend(collection, existingIdx, persisted)
			if err := s.writeCache(ownerID, collection); err != nil {
				return zero, err
			}
			return persisted, nil
		}

		if !errors.IsConnectivity(remoteErr) {
			return zero, remoteErr
		}
		logger.Warn("Remote write failed, degrading to local-only", "domain", s.desc.Domain, "key", key, "error", remoteErr)
	}

	// Local-only path: anonymous mode or unreachable remote.
	var persisted T
	if existingIdx >= 0 {
		persisted = merge(collection[existingIdx], incoming)
		s.desc.Touch(&persisted, s.now())
	} else {
		persisted = incoming
		if s.desc.SetID != nil && s.desc.ID(persisted) == "" {
			s.desc.SetID(&persisted, LocalID(s.now()))
		}
	}

	collection = s.replaceOrPrepend(collection, existingIdx, persisted)
	if err := s.writeCache(ownerID, collection); err != nil {
		return zero, err
	}
	return persisted, nil
}

// Delete removes a record everywhere. The remote delete is best effort:
// its failure is logged and never blocks the unconditional local removal.
func (s *Store[T]) Delete(ctx context.Context, ownerID string, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ownerID != "" {
		if err := s.remote.Delete(ctx, rec); err != nil {
			if errors.IsConnectivity(err) {
				logger.Warn("Remote delete failed, removing locally only", "domain", s.desc.Domain, "error", err)
			} else {
				logger.Error("Remote delete failed", "domain", s.desc.Domain, "error", err)
			}
		}
	}

	collection, err := s.readCache(ownerID)
	if err != nil {
		return err
	}

	id := s.desc.ID(rec)
	filtered := collection[:0]
	for _, r := range collection {
		if s.desc.ID(r) != id {
			filtered = append(filtered, r)
		}
	}

	return s.writeCache(ownerID, filtered)
}

func (s *Store[T]) replaceOrPrepend(collection []T, idx int, rec T) []T {
	if idx >= 0 {
		collection[idx] = rec
		return collection
	}
	return append([]T{rec}, collection...)
}

// readCache returns the deduplicated cached collection for an owner, or an
// empty slice when the key has never been written.
func (s *Store[T]) readCache(ownerID string) ([]T, error) {
	raw, ok, err := s.cache.Get(s.desc.CacheKey(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s cache: %w", s.desc.Domain, err)
	}
	if !ok {
		return nil, nil
	}

	var records []T
	if s.desc.Decode != nil {
		records, err = s.desc.Decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s cache: %w", s.desc.Domain, err)
		}
	} else if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s cache: %w", s.desc.Domain, err)
	}

	return s.dedupe(records), nil
}

// dedupe drops records whose id, or failing that whose content fingerprint,
// was already seen. Order is preserved. Absorbs duplicate rows written by
// older releases that retried local inserts.
func (s *Store[T]) dedupe(records []T) []T {
	seenIDs := make(map[string]bool, len(records))
	seenPrints := make(map[string]bool, len(records))

	out := records[:0]
	for _, rec := range records {
		id := s.desc.ID(rec)
		if id != "" && seenIDs[id] {
			continue
		}
		print := s.desc.Fingerprint(rec)
		if seenPrints[print] {
			continue
		}
		if id != "" {
			seenIDs[id] = true
		}
		seenPrints[print] = true
		out = append(out, rec)
	}
	return out
}

func (s *Store[T]) writeCache(ownerID string, collection []T) error {
	if collection == nil {
		collection = []T{}
	}
	var data []byte
	var err error
	if s.desc.Encode != nil {
		data, err = s.desc.Encode(collection)
	} else {
		data, err = json.Marshal(collection)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize %s cache: %w", s.desc.Domain, err)
	}
	if err := s.cache.Set(s.desc.CacheKey(ownerID), string(data)); err != nil {
		return fmt.Errorf("failed to write %s cache: %w", s.desc.Domain, err)
	}
	return nil
}

// LocalID synthesizes an id for a record created while the remote was
// unreachable. Nanosecond clock resolution makes collisions improbable
// within one cache.
func LocalID(now time.Time) string {
	return fmt.Sprintf("local-%d", now.UnixNano())
}
