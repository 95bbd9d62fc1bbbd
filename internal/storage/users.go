package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (db *DB) GetUser(ctx context.Context, userID string) (*User, error) {
	u := &User{}
	var createdAt string
	err := db.connection.QueryRowContext(ctx,
		`SELECT user_id, role, created_at FROM users WHERE user_id = $1`, userID).
		Scan(&u.UserID, &u.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}
	u.CreatedAt, _ = time.Parse(tsLayout, createdAt)
	return u, nil
}

// EnsureUser returns the stored user, creating it with defaultRole on first
// access. The second return value reports whether the user was created.
func (db *DB) EnsureUser(ctx context.Context, userID, defaultRole string) (*User, bool, error) {
	u, err := db.GetUser(ctx, userID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	u = &User{UserID: userID, Role: defaultRole, CreatedAt: db.now().UTC()}
	res, err := db.connection.ExecContext(ctx,
		`INSERT INTO users (user_id, role, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO NOTHING`,
		u.UserID, u.Role, formatTS(u.CreatedAt))
	if err != nil {
		return nil, false, fmt.Errorf("provisioning user %s: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// lost a race with a concurrent first access
		existing, err := db.GetUser(ctx, userID)
		return existing, false, err
	}
	return u, true, nil
}

// SetUserRole changes the role of an existing user.
func (db *DB) SetUserRole(ctx context.Context, userID, role string) error {
	res, err := db.connection.ExecContext(ctx, `UPDATE users SET role = $2 WHERE user_id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("updating role for %s: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// ListUsers returns every known user id (tenant) in creation order.
func (db *DB) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT user_id FROM users ORDER BY created_at, user_id LIMIT $1`, MaxListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
