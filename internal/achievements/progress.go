package achievements

import (
	"fmt"
	"strings"
)

// Sources supply live counts for progress reporting. Each func recounts from
// the raw collections rather than trusting cached aggregates, so progress is
// accurate even when stats have not been recomputed recently.
type Sources struct {
	Entries     func() (int, error)
	Streak      func() (int, error)
	Completions func() (int, error)
	HealthDays  func() (int, error)
	UsageDays   func() (int, error)
}

// Progress describes how far along one rule is.
type Progress struct {
	RuleID   string
	Current  int
	Required int
	Percent  int
	Unlocked bool
}

// ProgressFor reports progress toward a single rule. An unlocked rule always
// reports 100% with current pinned to the requirement.
func (e *Engine) ProgressFor(ruleID string) (Progress, error) {
	rule, ok := RuleByID(ruleID)
	if !ok {
		return Progress{}, fmt.Errorf("unknown achievement %q", ruleID)
	}

	unlocked, err := e.Unlocked()
	if err != nil {
		return Progress{}, err
	}
	for _, a := range unlocked {
		if a.ID == rule.ID {
			return Progress{
				RuleID:   rule.ID,
				Current:  rule.Threshold,
				Required: rule.Threshold,
				Percent:  100,
				Unlocked: true,
			}, nil
		}
	}

	current, err := e.liveCount(rule.ID)
	if err != nil {
		return Progress{}, err
	}
	percent := 0
	if rule.Threshold > 0 {
		percent = current * 100 / rule.Threshold
		if percent > 100 {
			percent = 100
		}
	}
	return Progress{
		RuleID:   rule.ID,
		Current:  current,
		Required: rule.Threshold,
		Percent:  percent,
	}, nil
}

// liveCount mirrors counterFor's substring convention over the injected
// sources.
func (e *Engine) liveCount(ruleID string) (int, error) {
	var src func() (int, error)
	switch {
	case strings.Contains(ruleID, "streak"):
		src = e.sources.Streak
	case strings.Contains(ruleID, "task"), strings.Contains(ruleID, "habit"):
		src = e.sources.Completions
	case strings.Contains(ruleID, "entry"), strings.Contains(ruleID, "entries"):
		src = e.sources.Entries
	case strings.Contains(ruleID, "health"):
		src = e.sources.HealthDays
	case strings.Contains(ruleID, "usage"):
		src = e.sources.UsageDays
	default:
		src = e.sources.Entries
	}
	if src == nil {
		return 0, nil
	}
	return src()
}
