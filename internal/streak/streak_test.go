package streak

import "testing"

func TestCurrentEmpty(t *testing.T) {
	if got := Current(nil, "2024-03-06"); got != 0 {
		t.Errorf("empty record set should give streak 0, got %d", got)
	}
}

func TestCurrentConsecutive(t *testing.T) {
	days := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}

	// Anchored at the most recent qualifying day
	if got := Current(days, "2024-03-05"); got != 5 {
		t.Errorf("streak as of 2024-03-05 = %d, want 5", got)
	}

	// A missing asOf day breaks the streak immediately
	if got := Current(days, "2024-03-06"); got != 0 {
		t.Errorf("streak as of 2024-03-06 = %d, want 0", got)
	}
}

func TestCurrentGap(t *testing.T) {
	days := []string{"2024-03-01", "2024-03-02", "2024-03-04", "2024-03-05"}
	if got := Current(days, "2024-03-05"); got != 2 {
		t.Errorf("gap on 03-03 should cap streak at 2, got %d", got)
	}
}

func TestCurrentUnorderedWithDuplicates(t *testing.T) {
	days := []string{"2024-03-05", "2024-03-03", "2024-03-04", "2024-03-05", "2024-03-04"}
	if got := Current(days, "2024-03-05"); got != 3 {
		t.Errorf("unordered/duplicated days should still give 3, got %d", got)
	}
}

func TestLongest(t *testing.T) {
	// Runs of 2 and 4, the longer one not ending at asOf
	days := []string{
		"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04",
		"2024-02-10", "2024-02-11",
	}
	if got := Longest(days, "2024-03-01"); got != 4 {
		t.Errorf("longest = %d, want 4", got)
	}
}

func TestLongestWindowExcludesOldRuns(t *testing.T) {
	days := []string{"2020-01-01", "2020-01-02", "2020-01-03", "2024-03-01"}
	if got := Longest(days, "2024-03-05"); got != 1 {
		t.Errorf("runs outside the trailing window must not count, got %d", got)
	}
}

func TestLongestEmpty(t *testing.T) {
	if got := Longest(nil, "2024-03-05"); got != 0 {
		t.Errorf("longest of empty set = %d, want 0", got)
	}
}
