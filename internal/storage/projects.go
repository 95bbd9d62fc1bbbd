package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

func (db *DB) CreateProject(ctx context.Context, p *Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = db.now().UTC()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project %s: %w", p.ProjectID, err)
	}
	_, err = db.connection.ExecContext(ctx,
		`INSERT INTO projects (project_id, owner_id, data, created_at) VALUES ($1, $2, $3, $4)`,
		p.ProjectID, p.OwnerID, string(data), formatTS(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving project %s: %w", p.ProjectID, err)
	}
	return nil
}

func (db *DB) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var data string
	err := db.connection.QueryRowContext(ctx, `SELECT data FROM projects WHERE project_id = $1`, projectID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", projectID, err)
	}
	p := &Project{}
	if err := json.Unmarshal([]byte(data), p); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", projectID, err)
	}
	return p, nil
}

// ListProjects returns the projects owned by one user.
func (db *DB) ListProjects(ctx context.Context, ownerID string) ([]*Project, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT data FROM projects WHERE owner_id = $1 ORDER BY created_at, project_id LIMIT $2`,
		ownerID, MaxListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing projects for %s: %w", ownerID, err)
	}
	defer rows.Close()

	var res []*Project
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		p := &Project{}
		if err := json.Unmarshal([]byte(data), p); err != nil {
			return nil, fmt.Errorf("decoding project: %w", err)
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (db *DB) CreatePosition(ctx context.Context, pos *Position) error {
	if pos.CreatedAt.IsZero() {
		pos.CreatedAt = db.now().UTC()
	}
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("encoding position %s: %w", pos.PositionID, err)
	}
	_, err = db.connection.ExecContext(ctx,
		`INSERT INTO positions (position_id, project_id, status, data, created_at) VALUES ($1, $2, $3, $4, $5)`,
		pos.PositionID, pos.ProjectID, pos.Status, string(data), formatTS(pos.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving position %s: %w", pos.PositionID, err)
	}
	return nil
}

func (db *DB) GetPosition(ctx context.Context, positionID string) (*Position, error) {
	var data string
	err := db.connection.QueryRowContext(ctx, `SELECT data FROM positions WHERE position_id = $1`, positionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading position %s: %w", positionID, err)
	}
	pos := &Position{}
	if err := json.Unmarshal([]byte(data), pos); err != nil {
		return nil, fmt.Errorf("decoding position %s: %w", positionID, err)
	}
	return pos, nil
}

// ListOpenPositions returns the positions of a project with status=open.
func (db *DB) ListOpenPositions(ctx context.Context, projectID string) ([]*Position, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT data FROM positions WHERE project_id = $1 AND status = $2 ORDER BY created_at, position_id LIMIT $3`,
		projectID, PositionOpen, MaxListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing positions for %s: %w", projectID, err)
	}
	defer rows.Close()

	var res []*Position
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		pos := &Position{}
		if err := json.Unmarshal([]byte(data), pos); err != nil {
			return nil, fmt.Errorf("decoding position: %w", err)
		}
		res = append(res, pos)
	}
	return res, rows.Err()
}
