package remote

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/models"
)

// Health returns the wellness check remote for use by a record store.
func (c *Client) Health() *HealthRemote {
	return &HealthRemote{c: c}
}

type HealthRemote struct {
	c *Client
}

func (r *HealthRemote) List(ctx context.Context, ownerID string) ([]models.HealthSample, error) {
	rows, err := r.c.db.QueryContext(ctx, `
		SELECT user_id, to_char(date, 'YYYY-MM-DD'), water_glasses, exercise_minutes, sleep_hours, meditation_minutes, updated_at
		FROM wellness_checks WHERE user_id = $1
		ORDER BY date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.HealthSample
	for rows.Next() {
		var h models.HealthSample
		if err := rows.Scan(&h.UserID, &h.Date, &h.WaterGlasses, &h.ExerciseMinutes, &h.SleepHours, &h.MeditationMinutes, &h.UpdatedAt); err != nil {
			return nil, err
		}
		samples = append(samples, h)
	}
	return samples, rows.Err()
}

// upsert writes the sample by its (user_id, date) natural key. The remote
// table supports true upsert, so Insert and Update share one statement.
func (r *HealthRemote) upsert(ctx context.Context, h models.HealthSample) (models.HealthSample, error) {
	row := r.c.db.QueryRowContext(ctx, `
		INSERT INTO wellness_checks (user_id, date, water_glasses, exercise_minutes, sleep_hours, meditation_minutes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id, date) DO UPDATE SET
			water_glasses = excluded.water_glasses,
			exercise_minutes = excluded.exercise_minutes,
			sleep_hours = excluded.sleep_hours,
			meditation_minutes = excluded.meditation_minutes,
			updated_at = now()
		RETURNING updated_at`,
		h.UserID, h.Date, h.WaterGlasses, h.ExerciseMinutes, h.SleepHours, h.MeditationMinutes)

	if err := row.Scan(&h.UpdatedAt); err != nil {
		return models.HealthSample{}, fmt.Errorf("failed to upsert wellness check for %s: %w", h.Date, err)
	}
	return h, nil
}

func (r *HealthRemote) Insert(ctx context.Context, h models.HealthSample) (models.HealthSample, error) {
	return r.upsert(ctx, h)
}

func (r *HealthRemote) Update(ctx context.Context, h models.HealthSample) (models.HealthSample, error) {
	return r.upsert(ctx, h)
}

func (r *HealthRemote) Delete(ctx context.Context, h models.HealthSample) error {
	_, err := r.c.db.ExecContext(ctx,
		"DELETE FROM wellness_checks WHERE user_id = $1 AND date = $2", h.UserID, h.Date)
	return err
}
