package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/daybook-app/daybook/internal/models"
)

// strictCompletionRemote enforces the habit_entries table constraints:
// primary-key uniqueness and (habit_id, day) natural-key convergence.
type strictCompletionRemote struct {
	rows []models.HabitCompletion
}

func (r *strictCompletionRemote) List(ctx context.Context, ownerID string) ([]models.HabitCompletion, error) {
	out := make([]models.HabitCompletion, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *strictCompletionRemote) Insert(ctx context.Context, rec models.HabitCompletion) (models.HabitCompletion, error) {
	for i, existing := range r.rows {
		if existing.HabitID == rec.HabitID && existing.Day == rec.Day {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			r.rows[i] = rec
			return rec, nil
		}
		if existing.ID == rec.ID {
			return models.HabitCompletion{}, fmt.Errorf(`pq: duplicate key value violates unique constraint "habit_entries_pkey"`)
		}
	}
	r.rows = append(r.rows, rec)
	return rec, nil
}

func (r *strictCompletionRemote) Update(ctx context.Context, rec models.HabitCompletion) (models.HabitCompletion, error) {
	for i, existing := range r.rows {
		if existing.ID == rec.ID {
			r.rows[i] = rec
			return rec, nil
		}
	}
	return models.HabitCompletion{}, fmt.Errorf("no row with id %q", rec.ID)
}

func (r *strictCompletionRemote) Delete(ctx context.Context, rec models.HabitCompletion) error {
	filtered := r.rows[:0]
	for _, existing := range r.rows {
		if existing.ID != rec.ID {
			filtered = append(filtered, existing)
		}
	}
	r.rows = filtered
	return nil
}

func TestHabitMarkAssignsCompletionID(t *testing.T) {
	remote := &strictCompletionRemote{}
	ctx := newTestContext(t, &strictEntryRemote{}, remote)

	add := HabitAddCmd{Title: "Run", Target: 1}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	mark := HabitMarkCmd{Title: "Run", Date: "2026-03-02"}
	if err := mark.Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}
	mark = HabitMarkCmd{Title: "Run", Date: "2026-03-03"}
	if err := mark.Run(ctx); err != nil {
		t.Fatalf("second habit mark failed: %v", err)
	}

	if len(remote.rows) != 2 {
		t.Fatalf("expected 2 remote completions, got %d", len(remote.rows))
	}
	first, second := remote.rows[0], remote.rows[1]
	if first.ID == "" || second.ID == "" {
		t.Fatalf("completions reached the remote without ids: %q / %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("distinct completions share id %q", first.ID)
	}
	if !first.Completed || !second.Completed {
		t.Errorf("marks should record completion: %+v %+v", first, second)
	}
}

func TestHabitMarkToggleReusesRow(t *testing.T) {
	remote := &strictCompletionRemote{}
	ctx := newTestContext(t, &strictEntryRemote{}, remote)

	if err := (&HabitAddCmd{Title: "Read", Target: 1}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	mark := HabitMarkCmd{Title: "Read", Date: "2026-03-02"}
	if err := mark.Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	firstID := remote.rows[0].ID

	// Marking the same day again toggles it off in the same row.
	if err := mark.Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if len(remote.rows) != 1 {
		t.Fatalf("toggle created a second row: %d", len(remote.rows))
	}
	if remote.rows[0].ID != firstID {
		t.Errorf("toggle changed the row id: %q -> %q", firstID, remote.rows[0].ID)
	}
	if remote.rows[0].Completed {
		t.Error("second mark should flip the day back off")
	}
}
