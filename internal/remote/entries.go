package remote

import (
	"context"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/daybook-app/daybook/internal/models"
)

// Entries returns the journal entry remote for use by a record store.
func (c *Client) Entries() *EntriesRemote {
	return &EntriesRemote{c: c}
}

type EntriesRemote struct {
	c *Client
}

func (r *EntriesRemote) List(ctx context.Context, ownerID string) ([]models.Entry, error) {
	rows, err := r.c.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, mood, tags, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM diary_entries WHERE user_id = $1
		ORDER BY date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var tags pq.StringArray
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &tags, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Tags = tags
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Insert converges on the (user_id, date) natural key. A fresh machine whose
// cache has not seen the remote row yet still resolves a same-day write to an
// update rather than a unique-constraint failure.
func (r *EntriesRemote) Insert(ctx context.Context, e models.Entry) (models.Entry, error) {
	row := r.c.db.QueryRowContext(ctx, `
		INSERT INTO diary_entries (id, user_id, title, content, mood, tags, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, date) DO UPDATE
		SET title = excluded.title, content = excluded.content, mood = excluded.mood,
		    tags = excluded.tags, updated_at = now()
		RETURNING id, created_at, updated_at`,
		e.ID, e.UserID, e.Title, e.Content, e.Mood, pq.Array(e.Tags), e.Date, e.CreatedAt, e.UpdatedAt)

	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}
	return e, nil
}

func (r *EntriesRemote) Update(ctx context.Context, e models.Entry) (models.Entry, error) {
	row := r.c.db.QueryRowContext(ctx, `
		UPDATE diary_entries
		SET title = $1, content = $2, mood = $3, tags = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at`,
		e.Title, e.Content, e.Mood, pq.Array(e.Tags), e.ID, e.UserID)

	if err := row.Scan(&e.UpdatedAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to update entry %s: %w", e.ID, err)
	}
	return e, nil
}

func (r *EntriesRemote) Delete(ctx context.Context, e models.Entry) error {
	_, err := r.c.db.ExecContext(ctx,
		"DELETE FROM diary_entries WHERE id = $1 AND user_id = $2", e.ID, e.UserID)
	return err
}
