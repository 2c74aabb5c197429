package recordstore

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/models"
)

// NewEntryStore builds the journal entry instance of the dual-store pattern.
// The natural key is the calendar date: one canonical entry per (owner, day).
func NewEntryStore(remote Remote[models.Entry], c cache.Store) *Store[models.Entry] {
	return New(remote, c, Descriptor[models.Entry]{
		Domain:   "entries",
		CacheKey: cache.EntriesKey,
		ID:       func(e models.Entry) string { return e.ID },
		NaturalKey: func(e models.Entry) string {
			return e.Date
		},
		Fingerprint: func(e models.Entry) string {
			return fingerprint(struct {
				Date, Title, Content string
			}{e.Date, e.Title, e.Content})
		},
		Touch: func(e *models.Entry, now time.Time) { e.UpdatedAt = now },
		SetID: func(e *models.Entry, id string) { e.ID = id },
	})
}

// MergeEntry applies a same-day write over the existing entry. Zero-valued
// incoming fields keep the existing value, matching the partial-record
// upsert contract.
func MergeEntry(existing, incoming models.Entry) models.Entry {
	merged := existing
	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.Content != "" {
		merged.Content = incoming.Content
	}
	if incoming.Mood != 0 {
		merged.Mood = incoming.Mood
	}
	if incoming.Tags != nil {
		merged.Tags = incoming.Tags
	}
	merged.UpdatedAt = incoming.UpdatedAt
	return merged
}

// fingerprint hashes a reduced view of a record for legacy dedup.
func fingerprint(v any) string {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing a plain struct of strings and ints cannot fail; fall back
		// to the formatted value rather than dropping the record.
		return fmt.Sprintf("%+v", v)
	}
	return fmt.Sprintf("%x", h)
}
