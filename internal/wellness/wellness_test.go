package wellness

import "testing"

func TestScoreBounds(t *testing.T) {
	if got := Score(Inputs{}); got != 0 {
		t.Errorf("zero inputs should score 0, got %d", got)
	}

	huge := Inputs{
		CurrentStreak:    1000,
		TotalEntries:     100000,
		TotalCompletions: 100000,
		HealthDays:       10000,
		AppUsageDays:     10000,
	}
	if got := Score(huge); got != 100 {
		t.Errorf("score must clamp at 100, got %d", got)
	}
}

func TestScoreContributions(t *testing.T) {
	cases := []struct {
		name string
		in   Inputs
		want int
	}{
		{"streak capped at 30", Inputs{CurrentStreak: 50}, 30},
		{"streak x2", Inputs{CurrentStreak: 7}, 14},
		{"entries div 5 capped at 20", Inputs{TotalEntries: 500}, 20},
		{"entries div 5", Inputs{TotalEntries: 27}, 5},
		{"tasks div 2 capped at 25", Inputs{TotalCompletions: 100}, 25},
		{"health days capped at 15", Inputs{HealthDays: 40}, 15},
		{"usage div 7 capped at 10", Inputs{AppUsageDays: 140}, 10},
	}
	for _, tc := range cases {
		if got := Score(tc.in); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

// Raising any single counter while holding the others fixed must never lower
// the score.
func TestScoreMonotonic(t *testing.T) {
	base := Inputs{CurrentStreak: 3, TotalEntries: 12, TotalCompletions: 9, HealthDays: 4, AppUsageDays: 20}
	baseScore := Score(base)

	variants := []Inputs{base, base, base, base, base}
	variants[0].CurrentStreak++
	variants[1].TotalEntries++
	variants[2].TotalCompletions++
	variants[3].HealthDays++
	variants[4].AppUsageDays++

	for i, v := range variants {
		if got := Score(v); got < baseScore {
			t.Errorf("variant %d: score decreased from %d to %d", i, baseScore, got)
		}
	}
}

func TestLevelBands(t *testing.T) {
	cases := []struct {
		score     int
		level     int
		exp       int
		threshold int
	}{
		{0, 1, 0, 10},
		{9, 1, 9, 10},
		{10, 2, 0, 15},
		{24, 2, 14, 15},
		{25, 3, 0, 20},
		{44, 3, 19, 20},
		{45, 4, 0, 25},
		{69, 4, 24, 25},
		{70, 5, 0, 30},
		{99, 5, 29, 30},
		{100, 5, 30, 30}, // saturated
	}
	for _, tc := range cases {
		got := LevelFor(tc.score)
		if got.Level != tc.level || got.Experience != tc.exp || got.NextThreshold != tc.threshold {
			t.Errorf("LevelFor(%d) = %+v, want level=%d exp=%d threshold=%d",
				tc.score, got, tc.level, tc.exp, tc.threshold)
		}
	}
}
