// Package streak computes contiguous-day streaks over day-stamped records.
//
// One definition is used everywhere: a streak is anchored at the asOf day the
// caller passes. If asOf itself has no qualifying record the streak is 0,
// even when the day before does. Callers that want the lenient reading pass
// the most recent qualifying day as asOf.
package streak

import (
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/utils"
)

// Current returns the number of consecutive qualifying days walking back
// from asOf. Duplicate and unordered days are tolerated.
func Current(days []string, asOf string) int {
	if len(days) == 0 {
		return 0
	}

	set := daySet(days)
	n := 0
	for day := asOf; set[day]; day = utils.AddDays(day, -1) {
		n++
	}
	return n
}

// Longest returns the longest run of consecutive qualifying days within the
// trailing window ending at asOf.
func Longest(days []string, asOf string) int {
	return LongestWithin(days, asOf, constants.LongestStreakWindowDays)
}

// LongestWithin scans the window day by day, tracking the longest run seen.
func LongestWithin(days []string, asOf string, windowDays int) int {
	if len(days) == 0 || windowDays <= 0 {
		return 0
	}

	set := daySet(days)
	longest, run := 0, 0
	for offset := windowDays - 1; offset >= 0; offset-- {
		if set[utils.AddDays(asOf, -offset)] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func daySet(days []string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}
