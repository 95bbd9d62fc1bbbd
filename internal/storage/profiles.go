package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveProfile inserts or replaces a profile document keyed by employee_id.
// CreatedAt and UpdatedAt are stamped when zero / always respectively.
func (db *DB) SaveProfile(ctx context.Context, p *DemobProfile) error {
	now := db.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile %s: %w", p.EmployeeID, err)
	}

	query := `INSERT INTO demob_profiles (employee_id, current_status, demob_date, data, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (employee_id) DO UPDATE
                SET current_status = EXCLUDED.current_status,
                    demob_date = EXCLUDED.demob_date,
                    data = EXCLUDED.data,
                    updated_at = EXCLUDED.updated_at`
	_, err = db.connection.ExecContext(ctx, query,
		p.EmployeeID,
		p.CurrentStatus,
		p.DemobDate.String(),
		string(data),
		formatTS(p.CreatedAt),
		formatTS(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", p.EmployeeID, err)
	}
	return nil
}

func (db *DB) GetProfile(ctx context.Context, employeeID string) (*DemobProfile, error) {
	return getProfile(ctx, db.connection, employeeID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProfile(ctx context.Context, q queryRower, employeeID string) (*DemobProfile, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM demob_profiles WHERE employee_id = $1`, employeeID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", employeeID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", employeeID, err)
	}
	p := &DemobProfile{}
	if err := json.Unmarshal([]byte(data), p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", employeeID, err)
	}
	return p, nil
}

// ListProfiles returns up to limit profiles ordered by demob date.
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]*DemobProfile, error) {
	return db.queryProfiles(ctx,
		`SELECT data FROM demob_profiles ORDER BY demob_date, employee_id LIMIT $1`,
		clampLimit(limit))
}

// ListProfilesByStatus returns up to limit profiles with the given current_status.
func (db *DB) ListProfilesByStatus(ctx context.Context, status string, limit int) ([]*DemobProfile, error) {
	return db.queryProfiles(ctx,
		`SELECT data FROM demob_profiles WHERE current_status = $1 ORDER BY demob_date, employee_id LIMIT $2`,
		status, clampLimit(limit))
}

func (db *DB) queryProfiles(ctx context.Context, query string, args ...any) ([]*DemobProfile, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var res []*DemobProfile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		p := &DemobProfile{}
		if err := json.Unmarshal([]byte(data), p); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// AppendMatchHistory appends one entry to the profile's matching_history.
// Existing entries are never rewritten.
func (db *DB) AppendMatchHistory(ctx context.Context, employeeID string, entry MatchHistoryEntry) error {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("appending history for %s: %w", employeeID, err)
	}
	defer tx.Rollback()

	p, err := getProfile(ctx, tx, employeeID)
	if err != nil {
		return err
	}
	p.MatchingHistory = append(p.MatchingHistory, entry)
	p.UpdatedAt = db.now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile %s: %w", employeeID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE demob_profiles SET data = $2, updated_at = $3 WHERE employee_id = $1`,
		employeeID, string(data), formatTS(p.UpdatedAt)); err != nil {
		return fmt.Errorf("appending history for %s: %w", employeeID, err)
	}
	return tx.Commit()
}
