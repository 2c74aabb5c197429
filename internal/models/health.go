package models

import "time"

// HealthSample is one day's wellness counters for an owner. At most one
// sample exists per (owner, date); absent counters default to zero.
type HealthSample struct {
	UserID            string    `json:"user_id,omitempty"`
	Date              string    `json:"date"` // YYYY-MM-DD
	WaterGlasses      int       `json:"water_glasses"`
	ExerciseMinutes   int       `json:"exercise_minutes"`
	SleepHours        float64   `json:"sleep_hours"`
	MeditationMinutes int       `json:"meditation_minutes"`
	UpdatedAt         time.Time `json:"updated_at"`
}
