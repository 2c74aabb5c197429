package achievements

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/constants"
	derrors "github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/models"
)

// Notifier delivers an unlock message to the user. Delivery failures never
// block or roll back an unlock.
type Notifier interface {
	Notify(title, message string) error
}

// Engine evaluates the rule table against durable counters and maintains the
// append-only set of unlocked achievements.
type Engine struct {
	mu       sync.Mutex
	cache    cache.Store
	notifier Notifier
	sources  Sources
	rules    []Rule
	now      func() time.Time
}

func NewEngine(store cache.Store, notifier Notifier, sources Sources) *Engine {
	return &Engine{
		cache:    store,
		notifier: notifier,
		sources:  sources,
		rules:    Rules,
		now:      time.Now,
	}
}

// SetClock overrides the engine clock, for tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Evaluate folds incoming counters over the stored ones, unlocks every rule
// whose threshold the merged counters now meet, persists the updated set and
// counters, and only then notifies. It returns the newly unlocked
// achievements, already persisted.
//
// An incoming zero means "not reported by this caller": partial callers keep
// the stored value. Callers holding the complete recounted set use
// EvaluateFull instead, so a broken streak or emptied collection actually
// lands in the snapshot.
func (e *Engine) Evaluate(incoming Counters) ([]models.Achievement, error) {
	return e.evaluate(incoming, false)
}

// EvaluateFull treats incoming as the complete authoritative counter set and
// replaces the stored counters with it, zeros included. Unlocks remain
// append-only regardless.
func (e *Engine) EvaluateFull(incoming Counters) ([]models.Achievement, error) {
	return e.evaluate(incoming, true)
}

func (e *Engine) evaluate(incoming Counters, replace bool) ([]models.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	unlocked, err := e.loadUnlocked()
	if err != nil {
		return nil, err
	}
	stats, err := e.loadStats()
	if err != nil {
		return nil, err
	}

	merged := incoming
	if !replace {
		merged = merge(countersOf(stats), incoming)
	}

	have := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		have[a.ID] = true
	}

	var fresh []models.Achievement
	now := e.now()
	for _, rule := range e.rules {
		if have[rule.ID] {
			continue
		}
		if counterFor(rule.ID, merged) < rule.Threshold {
			continue
		}
		fresh = append(fresh, models.Achievement{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Icon:        rule.Icon,
			Category:    rule.Category,
			UnlockedAt:  now,
		})
		stats.Experience += rule.RewardXP
	}

	applyCounters(&stats, merged)
	if len(fresh) > 0 {
		unlocked = append(unlocked, fresh...)
		if err := e.saveUnlocked(unlocked); err != nil {
			return nil, err
		}
	}
	if err := e.saveStats(stats); err != nil {
		return nil, err
	}

	for _, a := range fresh {
		if e.notifier == nil {
			continue
		}
		if err := e.notifier.Notify(a.Title, a.Description); err != nil {
			logger.Warn("achievement notification failed",
				"id", a.ID,
				"err", derrors.WithKind(err, derrors.KindNotification))
		}
	}
	return fresh, nil
}

// Unlocked returns the persisted unlocked set.
func (e *Engine) Unlocked() ([]models.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadUnlocked()
}

func (e *Engine) loadUnlocked() ([]models.Achievement, error) {
	raw, ok, err := e.cache.Get(constants.AchievementsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read unlocked achievements: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var unlocked []models.Achievement
	if err := json.Unmarshal([]byte(raw), &unlocked); err != nil {
		return nil, fmt.Errorf("failed to parse unlocked achievements: %w", err)
	}
	return unlocked, nil
}

func (e *Engine) saveUnlocked(unlocked []models.Achievement) error {
	raw, err := json.Marshal(unlocked)
	if err != nil {
		return fmt.Errorf("failed to serialize unlocked achievements: %w", err)
	}
	if err := e.cache.Set(constants.AchievementsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write unlocked achievements: %w", err)
	}
	return nil
}

func (e *Engine) loadStats() (models.UserStats, error) {
	raw, ok, err := e.cache.Get(constants.UserStatsKey)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to read user stats: %w", err)
	}
	if !ok || raw == "" {
		return models.UserStats{}, nil
	}
	var stats models.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return models.UserStats{}, fmt.Errorf("failed to parse user stats: %w", err)
	}
	return stats, nil
}

func (e *Engine) saveStats(stats models.UserStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to serialize user stats: %w", err)
	}
	if err := e.cache.Set(constants.UserStatsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write user stats: %w", err)
	}
	return nil
}

func countersOf(s models.UserStats) Counters {
	return Counters{
		TotalEntries:     s.TotalEntries,
		CurrentStreak:    s.CurrentStreak,
		LongestStreak:    s.LongestStreak,
		TotalCompletions: s.TotalCompletions,
		HealthDays:       s.HealthDays,
		TotalReminders:   s.TotalReminders,
		AppUsageDays:     s.AppUsageDays,
	}
}

func applyCounters(s *models.UserStats, c Counters) {
	s.TotalEntries = c.TotalEntries
	s.CurrentStreak = c.CurrentStreak
	s.LongestStreak = c.LongestStreak
	s.TotalCompletions = c.TotalCompletions
	s.HealthDays = c.HealthDays
	s.TotalReminders = c.TotalReminders
	s.AppUsageDays = c.AppUsageDays
}
