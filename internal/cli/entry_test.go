package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/daybook-app/daybook/internal/achievements"
	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
	"github.com/daybook-app/daybook/internal/stats"
)

// strictEntryRemote stands in for the Postgres table and enforces its
// constraints: primary-key uniqueness, the mood range, and (user_id, date)
// natural-key convergence on insert.
type strictEntryRemote struct {
	rows []models.Entry
}

func (r *strictEntryRemote) List(ctx context.Context, ownerID string) ([]models.Entry, error) {
	var out []models.Entry
	for _, rec := range r.rows {
		if rec.UserID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *strictEntryRemote) Insert(ctx context.Context, rec models.Entry) (models.Entry, error) {
	if rec.Mood < 0 || rec.Mood > 5 {
		return models.Entry{}, fmt.Errorf(`pq: new row for relation "diary_entries" violates check constraint "diary_entries_mood_check"`)
	}
	for i, existing := range r.rows {
		if existing.UserID == rec.UserID && existing.Date == rec.Date {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			r.rows[i] = rec
			return rec, nil
		}
		if existing.ID == rec.ID {
			return models.Entry{}, fmt.Errorf(`pq: duplicate key value violates unique constraint "diary_entries_pkey"`)
		}
	}
	r.rows = append(r.rows, rec)
	return rec, nil
}

func (r *strictEntryRemote) Update(ctx context.Context, rec models.Entry) (models.Entry, error) {
	if rec.Mood < 0 || rec.Mood > 5 {
		return models.Entry{}, fmt.Errorf(`pq: new row for relation "diary_entries" violates check constraint "diary_entries_mood_check"`)
	}
	for i, existing := range r.rows {
		if existing.ID == rec.ID {
			r.rows[i] = rec
			return rec, nil
		}
	}
	return models.Entry{}, fmt.Errorf("no row with id %q", rec.ID)
}

func (r *strictEntryRemote) Delete(ctx context.Context, rec models.Entry) error {
	filtered := r.rows[:0]
	for _, existing := range r.rows {
		if existing.ID != rec.ID {
			filtered = append(filtered, existing)
		}
	}
	r.rows = filtered
	return nil
}

func newTestContext(t *testing.T, entryRemote recordstore.Remote[models.Entry], completionRemote recordstore.Remote[models.HabitCompletion]) *Context {
	t.Helper()
	c := cache.NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if err := c.Init(); err != nil {
		t.Fatalf("cache init failed: %v", err)
	}

	entries := recordstore.NewEntryStore(entryRemote, c)
	health := recordstore.NewHealthStore(recordstore.Offline[models.HealthSample]{}, c)
	habits := recordstore.NewHabitStore(recordstore.Offline[models.Habit]{}, c)
	completions := recordstore.NewCompletionStore(completionRemote, c)
	engine := achievements.NewEngine(c, nil, achievements.Sources{})

	return &Context{
		Cache:       c,
		Entries:     entries,
		Health:      health,
		Habits:      habits,
		Completions: completions,
		Engine:      engine,
		Collector:   stats.NewCollector(entries, health, habits, completions, engine, c),
		User:        "u1",
	}
}

func TestEntryAddAssignsUniqueIDs(t *testing.T) {
	remote := &strictEntryRemote{}
	ctx := newTestContext(t, remote, recordstore.Offline[models.HabitCompletion]{})

	add := EntryAddCmd{Title: "monday", Date: "2026-03-02", Mood: 3}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	add = EntryAddCmd{Title: "tuesday", Date: "2026-03-03", Mood: 4}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(remote.rows) != 2 {
		t.Fatalf("expected 2 remote rows, got %d", len(remote.rows))
	}
	first, second := remote.rows[0], remote.rows[1]
	if first.ID == "" || second.ID == "" {
		t.Fatalf("entries reached the remote without ids: %q / %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("distinct entries share id %q", first.ID)
	}
}

func TestEntryAddSameDayKeepsID(t *testing.T) {
	remote := &strictEntryRemote{}
	ctx := newTestContext(t, remote, recordstore.Offline[models.HabitCompletion]{})

	add := EntryAddCmd{Title: "draft", Date: "2026-03-02", Mood: 2}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	firstID := remote.rows[0].ID

	add = EntryAddCmd{Title: "final", Date: "2026-03-02", Mood: 4}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("same-day rewrite failed: %v", err)
	}

	if len(remote.rows) != 1 {
		t.Fatalf("expected a single remote row for the day, got %d", len(remote.rows))
	}
	if remote.rows[0].ID != firstID {
		t.Errorf("same-day rewrite changed the id: %q -> %q", firstID, remote.rows[0].ID)
	}
	if remote.rows[0].Title != "final" || remote.rows[0].Mood != 4 {
		t.Errorf("rewrite did not land: %+v", remote.rows[0])
	}
}

func TestEntryAddWithoutMood(t *testing.T) {
	remote := &strictEntryRemote{}
	ctx := newTestContext(t, remote, recordstore.Offline[models.HabitCompletion]{})

	// No mood flag means mood 0, which the schema permits as "unset".
	add := EntryAddCmd{Title: "quiet day", Date: "2026-03-02"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add without mood failed: %v", err)
	}
	if len(remote.rows) != 1 || remote.rows[0].Mood != 0 {
		t.Fatalf("expected one row with mood 0, got %+v", remote.rows)
	}
}

func TestEntryAddRejectsOutOfRangeMood(t *testing.T) {
	ctx := newTestContext(t, &strictEntryRemote{}, recordstore.Offline[models.HabitCompletion]{})

	add := EntryAddCmd{Title: "bad", Date: "2026-03-02", Mood: 7}
	if err := add.Run(ctx); err == nil {
		t.Fatal("expected mood validation error")
	}
}
