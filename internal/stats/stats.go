// Package stats recomputes the materialized activity view from the raw
// record collections. The collections are the source of truth; the stored
// stats are a derived snapshot refreshed after every qualifying action.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/achievements"
	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
	"github.com/daybook-app/daybook/internal/streak"
	"github.com/daybook-app/daybook/internal/wellness"
)

// Collector aggregates the four record stores into a single UserStats
// snapshot and drives achievement evaluation with the fresh counters.
type Collector struct {
	entries     *recordstore.Store[models.Entry]
	health      *recordstore.Store[models.HealthSample]
	habits      *recordstore.Store[models.Habit]
	completions *recordstore.Store[models.HabitCompletion]
	engine      *achievements.Engine
	cache       cache.Store
	now         func() time.Time
}

func NewCollector(
	entries *recordstore.Store[models.Entry],
	health *recordstore.Store[models.HealthSample],
	habits *recordstore.Store[models.Habit],
	completions *recordstore.Store[models.HabitCompletion],
	engine *achievements.Engine,
	store cache.Store,
) *Collector {
	return &Collector{
		entries:     entries,
		health:      health,
		habits:      habits,
		completions: completions,
		engine:      engine,
		cache:       store,
		now:         time.Now,
	}
}

// SetClock overrides the collector clock, for tests.
func (c *Collector) SetClock(now func() time.Time) { c.now = now }

// Recompute rebuilds the stats snapshot for ownerID from the raw
// collections, persists it, and evaluates achievements against the new
// counters. It returns the snapshot and any achievements unlocked by it.
func (c *Collector) Recompute(ctx context.Context, ownerID string) (models.UserStats, []models.Achievement, error) {
	entries, err := c.entries.Load(ctx, ownerID)
	if err != nil {
		return models.UserStats{}, nil, err
	}
	samples, err := c.health.Load(ctx, ownerID)
	if err != nil {
		return models.UserStats{}, nil, err
	}
	completions, err := c.completions.Load(ctx, ownerID)
	if err != nil {
		return models.UserStats{}, nil, err
	}
	// Habits carry no counters of their own but a recompute refreshes every
	// collection's cache in one pass.
	if _, err := c.habits.Load(ctx, ownerID); err != nil {
		return models.UserStats{}, nil, err
	}

	today := c.now().Format(constants.DateFormat)
	entryDays := entryDayList(entries)

	counters := achievements.Counters{
		TotalEntries:     len(entries),
		CurrentStreak:    streak.Current(entryDays, today),
		LongestStreak:    streak.LongestWithin(entryDays, today, constants.LongestStreakWindowDays),
		TotalCompletions: completedCount(completions),
		HealthDays:       healthDayCount(samples),
		AppUsageDays:     usageDayCount(entries, samples, completions),
	}

	score := wellness.Score(wellness.Inputs{
		CurrentStreak:    counters.CurrentStreak,
		TotalEntries:     counters.TotalEntries,
		TotalCompletions: counters.TotalCompletions,
		HealthDays:       counters.HealthDays,
		AppUsageDays:     counters.AppUsageDays,
	})
	level := wellness.LevelFor(score)

	// The recount is authoritative, zeros included: a broken streak or an
	// emptied collection must land in the snapshot. The engine persists the
	// counters; the derived wellness fields are stamped on afterwards so the
	// snapshot and unlocked set never disagree about what was counted.
	unlocked, err := c.engine.EvaluateFull(counters)
	if err != nil {
		return models.UserStats{}, nil, err
	}

	snapshot, err := Snapshot(c.cache)
	if err != nil {
		return models.UserStats{}, nil, err
	}
	snapshot.WellnessScore = score
	snapshot.Level = level.Level
	if err := writeSnapshot(c.cache, snapshot); err != nil {
		return models.UserStats{}, nil, err
	}
	return snapshot, unlocked, nil
}

// Snapshot returns the stored stats without recomputing. A missing snapshot
// is the zero value, not an error.
func Snapshot(store cache.Store) (models.UserStats, error) {
	raw, ok, err := store.Get(constants.UserStatsKey)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to read user stats: %w", err)
	}
	if !ok || raw == "" {
		return models.UserStats{}, nil
	}
	var snapshot models.UserStats
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return models.UserStats{}, fmt.Errorf("failed to parse user stats: %w", err)
	}
	return snapshot, nil
}

func writeSnapshot(store cache.Store, snapshot models.UserStats) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize user stats: %w", err)
	}
	if err := store.Set(constants.UserStatsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write user stats: %w", err)
	}
	return nil
}

func entryDayList(entries []models.Entry) []string {
	days := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Date != "" {
			days = append(days, e.Date)
		}
	}
	return days
}

func completedCount(completions []models.HabitCompletion) int {
	n := 0
	for _, c := range completions {
		if c.Completed {
			n++
		}
	}
	return n
}

// healthDayCount counts days with at least one non-zero counter. A sample
// row with all counters zero is a placeholder, not tracked wellness.
func healthDayCount(samples []models.HealthSample) int {
	seen := map[string]bool{}
	for _, s := range samples {
		if s.WaterGlasses == 0 && s.ExerciseMinutes == 0 && s.SleepHours == 0 && s.MeditationMinutes == 0 {
			continue
		}
		seen[s.Date] = true
	}
	return len(seen)
}

// usageDayCount counts distinct days with any recorded activity across all
// domains.
func usageDayCount(entries []models.Entry, samples []models.HealthSample, completions []models.HabitCompletion) int {
	seen := map[string]bool{}
	for _, e := range entries {
		if e.Date != "" {
			seen[e.Date] = true
		}
	}
	for _, s := range samples {
		if s.Date != "" {
			seen[s.Date] = true
		}
	}
	for _, c := range completions {
		if c.Day != "" {
			seen[c.Day] = true
		}
	}
	return len(seen)
}

// ActiveDays returns the sorted distinct entry days, newest first. The CLI
// uses it for the streak breakdown view.
func ActiveDays(entries []models.Entry) []string {
	seen := map[string]bool{}
	for _, e := range entries {
		if e.Date != "" {
			seen[e.Date] = true
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}
