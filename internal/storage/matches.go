package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// CreateMatch persists a new match record. No uniqueness is enforced on the
// (employee, position) pairing.
func (db *DB) CreateMatch(ctx context.Context, m *MatchRecord) error {
	now := db.now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding match %s: %w", m.MatchID, err)
	}
	_, err = db.connection.ExecContext(ctx,
		`INSERT INTO match_records (match_id, employee_id, project_id, position_id, status, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.MatchID, m.EmployeeID, m.ProjectID, m.PositionID, m.Status, string(data), formatTS(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving match %s: %w", m.MatchID, err)
	}
	return nil
}

func (db *DB) GetMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	var data string
	err := db.connection.QueryRowContext(ctx, `SELECT data FROM match_records WHERE match_id = $1`, matchID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading match %s: %w", matchID, err)
	}
	m := &MatchRecord{}
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return nil, fmt.Errorf("decoding match %s: %w", matchID, err)
	}
	return m, nil
}

// UpdateMatch rewrites an existing match record.
func (db *DB) UpdateMatch(ctx context.Context, m *MatchRecord) error {
	m.UpdatedAt = db.now().UTC()
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding match %s: %w", m.MatchID, err)
	}
	res, err := db.connection.ExecContext(ctx,
		`UPDATE match_records SET status = $2, data = $3 WHERE match_id = $1`,
		m.MatchID, m.Status, string(data))
	if err != nil {
		return fmt.Errorf("updating match %s: %w", m.MatchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", m.MatchID, ErrNotFound)
	}
	return nil
}

// ListMatches returns up to limit match records, oldest first.
func (db *DB) ListMatches(ctx context.Context, limit int) ([]*MatchRecord, error) {
	return db.queryMatches(ctx,
		`SELECT data FROM match_records ORDER BY created_at, match_id LIMIT $1`,
		clampLimit(limit))
}

func (db *DB) ListMatchesByEmployee(ctx context.Context, employeeID string) ([]*MatchRecord, error) {
	return db.queryMatches(ctx,
		`SELECT data FROM match_records WHERE employee_id = $1 ORDER BY created_at, match_id LIMIT $2`,
		employeeID, MaxListLimit)
}

func (db *DB) queryMatches(ctx context.Context, query string, args ...any) ([]*MatchRecord, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var res []*MatchRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		m := &MatchRecord{}
		if err := json.Unmarshal([]byte(data), m); err != nil {
			return nil, fmt.Errorf("decoding match: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
