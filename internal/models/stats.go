package models

// UserStats is the materialized activity view recomputed on every qualifying
// action. The underlying record collections are the source of truth, not this.
type UserStats struct {
	TotalEntries     int `json:"total_entries"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
	HealthDays       int `json:"health_days"`
	TotalReminders   int `json:"total_reminders"`
	AppUsageDays     int `json:"app_usage_days"`
	WellnessScore    int `json:"wellness_score"`
	Level            int `json:"level"`
	Experience       int `json:"experience"`
}
