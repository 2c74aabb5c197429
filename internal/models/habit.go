package models

import "time"

// Habit is a recurring practice the owner tracks daily.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	TargetValue int       `json:"target_value"`
	Unit        string    `json:"unit,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitCompletion records one day's outcome for one habit. At most one
// completion exists per (habit, date).
type HabitCompletion struct {
	ID            string    `json:"id"`
	HabitID       string    `json:"habit_id"`
	Day           string    `json:"day"` // YYYY-MM-DD
	Completed     bool      `json:"completed"`
	AchievedValue int       `json:"achieved_value"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
