package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

type repoSQLite struct{ db *db.SQLiteDB }

func NewRepoSQLite(sq *db.SQLiteDB) Repository { return &repoSQLite{db: sq} }

func (r *repoSQLite) scan(row *sql.Row) (*User, error) {
	var u User
	var id string
	err := row.Scan(&id, &u.Username, &u.HashedPassword, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoSQLite) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, hashed_password, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID.String(), u.Username, u.HashedPassword, u.IsActive, u.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

func (r *repoSQLite) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, username, hashed_password, is_active, created_at
		FROM users WHERE username = ?`, username))
}
