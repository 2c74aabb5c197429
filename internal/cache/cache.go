// Package cache is the durable local key-value mirror of the remote store.
// Values are JSON documents keyed per owner and domain; the cache is never
// authoritative except when the remote is unreachable.
package cache

import (
	"github.com/daybook-app/daybook/internal/constants"
)

// Store is an opaque durable key->string map.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value for key and whether it was present. An absent
	// key is the first-run state, not an error.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)

	// Path returns a non-sensitive identifier for the backing store.
	Path() string
}

func ownerKey(base, ownerID string) string {
	if ownerID == "" {
		return base
	}
	return base + "_" + ownerID
}

// EntriesKey is the cache key for the journal entry collection of an owner.
// Anonymous mode uses the bare domain key.
func EntriesKey(ownerID string) string {
	return ownerKey(constants.EntriesKey, ownerID)
}

// HealthKey is the cache key for an owner's health samples.
func HealthKey(ownerID string) string {
	return ownerKey(constants.HealthKeyPrefix, ownerID)
}

// HabitsKey is the cache key for an owner's habit definitions.
func HabitsKey(ownerID string) string {
	return ownerKey(constants.HabitsKeyPrefix, ownerID)
}

// CompletionsKey is the cache key for an owner's habit completion records.
func CompletionsKey(ownerID string) string {
	return ownerKey(constants.CompletionsKeyPrefix, ownerID)
}
