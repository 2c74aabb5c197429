package remote

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/models"
)

// Habits returns the habit definition remote for use by a record store.
func (c *Client) Habits() *HabitsRemote {
	return &HabitsRemote{c: c}
}

type HabitsRemote struct {
	c *Client
}

func (r *HabitsRemote) List(ctx context.Context, ownerID string) ([]models.Habit, error) {
	rows, err := r.c.db.QueryContext(ctx, `
		SELECT id, user_id, title, category, target_value, unit, active, created_at, updated_at
		FROM habits WHERE user_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Category, &h.TargetValue, &h.Unit, &h.Active, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *HabitsRemote) Insert(ctx context.Context, h models.Habit) (models.Habit, error) {
	row := r.c.db.QueryRowContext(ctx, `
		INSERT INTO habits (id, user_id, title, category, target_value, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		h.ID, h.UserID, h.Title, h.Category, h.TargetValue, h.Unit, h.Active, h.CreatedAt, h.UpdatedAt)

	if err := row.Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}
	return h, nil
}

func (r *HabitsRemote) Update(ctx context.Context, h models.Habit) (models.Habit, error) {
	row := r.c.db.QueryRowContext(ctx, `
		UPDATE habits
		SET title = $1, category = $2, target_value = $3, unit = $4, active = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`,
		h.Title, h.Category, h.TargetValue, h.Unit, h.Active, h.ID, h.UserID)

	if err := row.Scan(&h.UpdatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit %s: %w", h.ID, err)
	}
	return h, nil
}

func (r *HabitsRemote) Delete(ctx context.Context, h models.Habit) error {
	_, err := r.c.db.ExecContext(ctx,
		"DELETE FROM habits WHERE id = $1 AND user_id = $2", h.ID, h.UserID)
	return err
}

// Completions returns the habit completion remote for use by a record store.
// Completion rows are scoped through their habit, so the owner filter joins
// against the habits table.
func (c *Client) Completions() *CompletionsRemote {
	return &CompletionsRemote{c: c}
}

type CompletionsRemote struct {
	c *Client
}

func (r *CompletionsRemote) List(ctx context.Context, ownerID string) ([]models.HabitCompletion, error) {
	rows, err := r.c.db.QueryContext(ctx, `
		SELECT e.id, e.habit_id, to_char(e.day, 'YYYY-MM-DD'), e.completed, e.achieved_value, e.note, e.created_at, e.updated_at
		FROM habit_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE h.user_id = $1
		ORDER BY e.day DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.HabitCompletion
	for rows.Next() {
		var c models.HabitCompletion
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Day, &c.Completed, &c.AchievedValue, &c.Note, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// Insert converges on the (habit_id, day) natural key, mirroring the entry
// and wellness upserts.
func (r *CompletionsRemote) Insert(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error) {
	row := r.c.db.QueryRowContext(ctx, `
		INSERT INTO habit_entries (id, habit_id, day, completed, achieved_value, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (habit_id, day) DO UPDATE
		SET completed = excluded.completed, achieved_value = excluded.achieved_value,
		    note = excluded.note, updated_at = now()
		RETURNING id, created_at, updated_at`,
		c.ID, c.HabitID, c.Day, c.Completed, c.AchievedValue, c.Note, c.CreatedAt, c.UpdatedAt)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.HabitCompletion{}, fmt.Errorf("failed to insert habit entry: %w", err)
	}
	return c, nil
}

func (r *CompletionsRemote) Update(ctx context.Context, c models.HabitCompletion) (models.HabitCompletion, error) {
	row := r.c.db.QueryRowContext(ctx, `
		UPDATE habit_entries
		SET completed = $1, achieved_value = $2, note = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`,
		c.Completed, c.AchievedValue, c.Note, c.ID)

	if err := row.Scan(&c.UpdatedAt); err != nil {
		return models.HabitCompletion{}, fmt.Errorf("failed to update habit entry %s: %w", c.ID, err)
	}
	return c, nil
}

func (r *CompletionsRemote) Delete(ctx context.Context, c models.HabitCompletion) error {
	_, err := r.c.db.ExecContext(ctx,
		"DELETE FROM habit_entries WHERE id = $1", c.ID)
	return err
}
