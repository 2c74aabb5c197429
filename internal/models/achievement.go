package models

import "time"

// Achievement is an unlocked achievement instance. The ID matches a rule id.
// Once in the unlocked set, an achievement is never removed or re-evaluated.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
