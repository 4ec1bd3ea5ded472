package sqlite

import (
	"context"
	"database/sql"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, u.Email).Scan(&exists)
	switch {
	case err == nil:
		return store.ErrAlreadyExists
	case err != sql.ErrNoRows:
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = ?`, email))
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE id = ?`, id))
}

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
