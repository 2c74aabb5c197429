package models

import "time"

// Entry is a journal entry. At most one canonical entry exists per
// (owner, date); a second write for the same day updates the existing record.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      int       `json:"mood"` // 1-5
	Tags      []string  `json:"tags,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
