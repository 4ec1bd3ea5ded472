package sqlite

import (
	"context"
	"database/sql"

	"github.com/yourfavcrm/crm/internal/crm/store"
)

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) CreateSession(ctx context.Context, token, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

func (r *sessionsRepo) ResolveSession(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM sessions WHERE token = ?`, token).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}
