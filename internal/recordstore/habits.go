package recordstore

import (
	"time"

	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/models"
)

// NewHabitStore builds the habit definition instance of the dual-store
// pattern. Habits are keyed by id; there is no one-per-day constraint.
func NewHabitStore(remote Remote[models.Habit], c cache.Store) *Store[models.Habit] {
	return New(remote, c, Descriptor[models.Habit]{
		Domain:   "habits",
		CacheKey: cache.HabitsKey,
		ID:       func(h models.Habit) string { return h.ID },
		NaturalKey: func(h models.Habit) string {
			return h.ID
		},
		Fingerprint: func(h models.Habit) string {
			return fingerprint(struct {
				Title, Category, Unit string
				Target                int
			}{h.Title, h.Category, h.Unit, h.TargetValue})
		},
		Touch: func(h *models.Habit, now time.Time) { h.UpdatedAt = now },
		SetID: func(h *models.Habit, id string) { h.ID = id },
	})
}

// MergeHabit applies an edit over the existing habit definition.
func MergeHabit(existing, incoming models.Habit) models.Habit {
	merged := existing
	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.Category != "" {
		merged.Category = incoming.Category
	}
	if incoming.TargetValue != 0 {
		merged.TargetValue = incoming.TargetValue
	}
	if incoming.Unit != "" {
		merged.Unit = incoming.Unit
	}
	merged.Active = incoming.Active
	merged.UpdatedAt = incoming.UpdatedAt
	return merged
}

// NewCompletionStore builds the habit completion instance of the dual-store
// pattern. The natural key is (habit, day): marking a habit twice on one day
// updates the existing record.
func NewCompletionStore(remote Remote[models.HabitCompletion], c cache.Store) *Store[models.HabitCompletion] {
	return New(remote, c, Descriptor[models.HabitCompletion]{
		Domain:   "completions",
		CacheKey: cache.CompletionsKey,
		ID:       func(c models.HabitCompletion) string { return c.ID },
		NaturalKey: func(c models.HabitCompletion) string {
			return c.HabitID + "|" + c.Day
		},
		Fingerprint: func(c models.HabitCompletion) string {
			return fingerprint(struct {
				HabitID, Day string
				Completed    bool
				Achieved     int
			}{c.HabitID, c.Day, c.Completed, c.AchievedValue})
		},
		Touch: func(c *models.HabitCompletion, now time.Time) { c.UpdatedAt = now },
		SetID: func(c *models.HabitCompletion, id string) { c.ID = id },
	})
}

// MergeCompletion applies a re-mark over the existing completion record.
func MergeCompletion(existing, incoming models.HabitCompletion) models.HabitCompletion {
	merged := existing
	merged.Completed = incoming.Completed
	if incoming.AchievedValue != 0 {
		merged.AchievedValue = incoming.AchievedValue
	}
	if incoming.Note != "" {
		merged.Note = incoming.Note
	}
	merged.UpdatedAt = incoming.UpdatedAt
	return merged
}
