package achievements

import "strings"

// RequirementKind categorizes what a rule measures.
type RequirementKind string

const (
	KindStreak      RequirementKind = "streak"
	KindTotal       RequirementKind = "total"
	KindConsecutive RequirementKind = "consecutive"
	KindMilestone   RequirementKind = "milestone"
)

// Rule is one row of the static achievement table. A rule is matched to its
// counter by substring convention on its id (see counterFor).
type Rule struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    string
	Kind        RequirementKind
	Threshold   int
	RewardXP    int
}

// Rules is the single rule table consumed by the evaluator. Every unlock in
// the application flows through it; there is no secondary unlock path.
var Rules = []Rule{
	{ID: "first_entry", Title: "First Words", Description: "Write your first journal entry", Icon: "✏️", Category: "journal", Kind: KindTotal, Threshold: 1, RewardXP: 10},
	{ID: "entries_10", Title: "Finding a Rhythm", Description: "Write 10 journal entries", Icon: "📓", Category: "journal", Kind: KindTotal, Threshold: 10, RewardXP: 25},
	{ID: "entries_50", Title: "Chronicler", Description: "Write 50 journal entries", Icon: "📚", Category: "journal", Kind: KindTotal, Threshold: 50, RewardXP: 50},
	{ID: "entries_100", Title: "A Hundred Days of Ink", Description: "Write 100 journal entries", Icon: "🏛️", Category: "journal", Kind: KindMilestone, Threshold: 100, RewardXP: 100},

	{ID: "streak_3", Title: "Warming Up", Description: "Journal 3 days in a row", Icon: "🔥", Category: "streak", Kind: KindStreak, Threshold: 3, RewardXP: 15},
	{ID: "streak_7", Title: "One Full Week", Description: "Journal 7 days in a row", Icon: "📅", Category: "streak", Kind: KindStreak, Threshold: 7, RewardXP: 30},
	{ID: "streak_30", Title: "Habit Formed", Description: "Journal 30 days in a row", Icon: "🌙", Category: "streak", Kind: KindStreak, Threshold: 30, RewardXP: 75},
	{ID: "streak_100", Title: "Unbroken", Description: "Journal 100 days in a row", Icon: "💎", Category: "streak", Kind: KindMilestone, Threshold: 100, RewardXP: 150},

	{ID: "first_task", Title: "Checked Off", Description: "Complete your first habit", Icon: "✅", Category: "habits", Kind: KindTotal, Threshold: 1, RewardXP: 10},
	{ID: "task_25", Title: "Getting Things Done", Description: "Complete 25 habit check-ins", Icon: "🎯", Category: "habits", Kind: KindTotal, Threshold: 25, RewardXP: 40},
	{ID: "task_100", Title: "Relentless", Description: "Complete 100 habit check-ins", Icon: "🏆", Category: "habits", Kind: KindMilestone, Threshold: 100, RewardXP: 100},

	{ID: "health_7", Title: "Body Scan", Description: "Track your wellness on 7 days", Icon: "💧", Category: "health", Kind: KindConsecutive, Threshold: 7, RewardXP: 25},
	{ID: "health_30", Title: "Vital Signs", Description: "Track your wellness on 30 days", Icon: "🩺", Category: "health", Kind: KindConsecutive, Threshold: 30, RewardXP: 60},

	{ID: "usage_30", Title: "Regular", Description: "Use the app on 30 different days", Icon: "🌱", Category: "general", Kind: KindMilestone, Threshold: 30, RewardXP: 50},
}

// RuleByID returns the rule with the given id, or false.
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Counters are the aggregated activity counters rules evaluate against.
type Counters struct {
	TotalEntries     int `json:"total_entries"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
	HealthDays       int `json:"health_days"`
	TotalReminders   int `json:"total_reminders"`
	AppUsageDays     int `json:"app_usage_days"`
}

// counterFor selects the counter a rule reads, by substring convention on
// the rule id.
func counterFor(ruleID string, c Counters) int {
	switch {
	case strings.Contains(ruleID, "streak"):
		return c.CurrentStreak
	case strings.Contains(ruleID, "task"), strings.Contains(ruleID, "habit"):
		return c.TotalCompletions
	case strings.Contains(ruleID, "entry"), strings.Contains(ruleID, "entries"):
		return c.TotalEntries
	case strings.Contains(ruleID, "health"):
		return c.HealthDays
	case strings.Contains(ruleID, "usage"):
		return c.AppUsageDays
	case strings.Contains(ruleID, "reminder"):
		return c.TotalReminders
	default:
		return c.TotalEntries
	}
}

// merge overlays incoming counters on stored ones. An incoming value wins
// whenever it is set; zero means "not reported by this call chain".
func merge(stored, incoming Counters) Counters {
	merged := stored
	if incoming.TotalEntries != 0 {
		merged.TotalEntries = incoming.TotalEntries
	}
	if incoming.CurrentStreak != 0 {
		merged.CurrentStreak = incoming.CurrentStreak
	}
	if incoming.LongestStreak != 0 {
		merged.LongestStreak = incoming.LongestStreak
	}
	if incoming.TotalCompletions != 0 {
		merged.TotalCompletions = incoming.TotalCompletions
	}
	if incoming.HealthDays != 0 {
		merged.HealthDays = incoming.HealthDays
	}
	if incoming.TotalReminders != 0 {
		merged.TotalReminders = incoming.TotalReminders
	}
	if incoming.AppUsageDays != 0 {
		merged.AppUsageDays = incoming.AppUsageDays
	}
	return merged
}
