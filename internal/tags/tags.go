// Package tags implements free-form labels on transactions, used by the
// dashboard's search filter. Tags are not part of the accounting math.
package tags

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("tag not found")

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Create inserts a tag, returning the existing row on a name conflict so the
// call is idempotent per user.
func (r *Repo) Create(ctx context.Context, userID, name string) (Tag, error) {
	var t Tag
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO tags (user_id, name)
		VALUES ($1::uuid, $2)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id::text, name, created_at
	`, userID, name).Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}

func (r *Repo) List(ctx context.Context, userID string) ([]Tag, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id::text, name, created_at
		FROM tags
		WHERE user_id = $1::uuid
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Attach links a tag to a transaction the user owns.
func (r *Repo) Attach(ctx context.Context, userID, transactionID, tagID string) error {
	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO transaction_tags (transaction_id, tag_id)
		SELECT tx.id, tg.id
		FROM transactions tx, tags tg
		WHERE tx.id = $1::uuid AND tx.user_id = $3::uuid
		  AND tg.id = $2::uuid AND tg.user_id = $3::uuid
		ON CONFLICT DO NOTHING
	`, transactionID, tagID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// either already attached or not visible; distinguish via lookup
		var exists bool
		err := r.Pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM transaction_tags tt
				JOIN transactions tx ON tx.id = tt.transaction_id
				WHERE tt.transaction_id = $1::uuid AND tt.tag_id = $2::uuid AND tx.user_id = $3::uuid
			)
		`, transactionID, tagID, userID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

func (r *Repo) Detach(ctx context.Context, userID, transactionID, tagID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM transaction_tags tt
		USING transactions tx
		WHERE tx.id = tt.transaction_id
		  AND tt.transaction_id = $1::uuid AND tt.tag_id = $2::uuid AND tx.user_id = $3::uuid
	`, transactionID, tagID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
