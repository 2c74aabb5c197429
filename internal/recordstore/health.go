package recordstore

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/models"
)

// NewHealthStore builds the health sample instance of the dual-store pattern.
// Samples have no server id; the (owner, date) natural key is the identity.
// The cached collection is stored as a JSON object keyed by ISO date, not an
// array, matching the shape other readers of health_data_* expect.
func NewHealthStore(remote Remote[models.HealthSample], c cache.Store) *Store[models.HealthSample] {
	return New(remote, c, Descriptor[models.HealthSample]{
		Domain:   "health",
		CacheKey: cache.HealthKey,
		ID:       func(h models.HealthSample) string { return h.Date },
		NaturalKey: func(h models.HealthSample) string {
			return h.Date
		},
		Fingerprint: func(h models.HealthSample) string {
			return fingerprint(struct {
				Date              string
				Water, Exercise   int
				Sleep             float64
				MeditationMinutes int
			}{h.Date, h.WaterGlasses, h.ExerciseMinutes, h.SleepHours, h.MeditationMinutes})
		},
		Touch:  func(h *models.HealthSample, now time.Time) { h.UpdatedAt = now },
		Encode: encodeHealthByDay,
		Decode: decodeHealthByDay,
	})
}

func encodeHealthByDay(records []models.HealthSample) ([]byte, error) {
	byDay := make(map[string]models.HealthSample, len(records))
	for _, r := range records {
		byDay[r.Date] = r
	}
	return json.Marshal(byDay)
}

func decodeHealthByDay(data []byte) ([]models.HealthSample, error) {
	var byDay map[string]models.HealthSample
	if err := json.Unmarshal(data, &byDay); err != nil {
		return nil, err
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	// Newest first, matching the remote list order.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	records := make([]models.HealthSample, 0, len(byDay))
	for _, d := range days {
		rec := byDay[d]
		if rec.Date == "" {
			rec.Date = d
		}
		records = append(records, rec)
	}
	return records, nil
}

// MergeHealth folds a partial counter write into the existing sample.
// Counters accumulate per day, so non-zero incoming values replace the
// existing ones while zero values leave them untouched.
func MergeHealth(existing, incoming models.HealthSample) models.HealthSample {
	merged := existing
	if incoming.WaterGlasses != 0 {
		merged.WaterGlasses = incoming.WaterGlasses
	}
	if incoming.ExerciseMinutes != 0 {
		merged.ExerciseMinutes = incoming.ExerciseMinutes
	}
	if incoming.SleepHours != 0 {
		merged.SleepHours = incoming.SleepHours
	}
	if incoming.MeditationMinutes != 0 {
		merged.MeditationMinutes = incoming.MeditationMinutes
	}
	merged.UpdatedAt = incoming.UpdatedAt
	return merged
}
