// Package wellness maps aggregated activity counters to a bounded composite
// score and a discrete level.
package wellness

import "github.com/daybook-app/daybook/internal/constants"

// Inputs are the activity counters feeding the score. All nonnegative.
type Inputs struct {
	CurrentStreak    int
	TotalEntries     int
	TotalCompletions int
	HealthDays       int
	AppUsageDays     int
}

// Score is a weighted sum of independently-capped contributions, clamped to
// [0, 100]. Each contribution is monotonically non-decreasing in its counter.
func Score(in Inputs) int {
	score := 0
	score += capped(in.CurrentStreak*2, 30)
	score += capped(in.TotalEntries/5, 20)
	score += capped(in.TotalCompletions/2, 25)
	score += capped(in.HealthDays, 15)
	score += capped(in.AppUsageDays/7, 10)

	return capped(score, constants.MaxWellnessScore)
}

func capped(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Level is the discrete band a score falls into, with band-relative
// experience and the width of the band as the next-level threshold.
type Level struct {
	Level         int `json:"level"`
	Experience    int `json:"experience"`
	NextThreshold int `json:"next_threshold"`
}

// Band boundaries: [0,10) [10,25) [25,45) [45,70) [70,100). A score of 100
// saturates at the maximum level.
var bands = []int{0, 10, 25, 45, 70, 100}

// LevelFor maps a score into its band.
func LevelFor(score int) Level {
	score = capped(score, constants.MaxWellnessScore)

	for i := len(bands) - 2; i >= 0; i-- {
		low, high := bands[i], bands[i+1]
		if score >= low {
			lvl := Level{
				Level:         i + 1,
				Experience:    score - low,
				NextThreshold: high - low,
			}
			if score == constants.MaxWellnessScore {
				// Saturated: full experience at max level
				lvl.Level = len(bands) - 1
				lvl.Experience = lvl.NextThreshold
			}
			return lvl
		}
	}
	return Level{Level: 1, Experience: 0, NextThreshold: bands[1]}
}
