package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const jobColumns = `job_id, kind, target_id, status, attempts, max_attempts, last_error, created_at, updated_at`

// EnqueueJob stores a new pending job.
func (db *DB) EnqueueJob(ctx context.Context, job *RematchJob) error {
	now := db.now().UTC()
	job.Status = JobPending
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.MaxAttempts < 1 {
		job.MaxAttempts = 1
	}
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO rematch_jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.JobID, job.Kind, job.TargetID, job.Status, job.Attempts, job.MaxAttempts, job.LastError,
		formatTS(job.CreatedAt), formatTS(job.UpdatedAt))
	if err != nil {
		return fmt.Errorf("enqueueing job %s: %w", job.JobID, err)
	}
	return nil
}

// ClaimJob moves the oldest pending job to processing and returns it.
// It returns ErrNotFound when nothing is pending.
func (db *DB) ClaimJob(ctx context.Context) (*RematchJob, error) {
	for attempt := 0; attempt < 3; attempt++ {
		job, err := db.scanJob(db.connection.QueryRowContext(ctx,
			`SELECT `+jobColumns+` FROM rematch_jobs WHERE status = $1 ORDER BY created_at, job_id LIMIT 1`,
			JobPending))
		if err != nil {
			return nil, err
		}

		now := db.now().UTC()
		res, err := db.connection.ExecContext(ctx,
			`UPDATE rematch_jobs SET status = $2, attempts = attempts + 1, updated_at = $3 WHERE job_id = $1 AND status = $4`,
			job.JobID, JobProcessing, formatTS(now), JobPending)
		if err != nil {
			return nil, fmt.Errorf("claiming job %s: %w", job.JobID, err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			job.Status = JobProcessing
			job.Attempts++
			job.UpdatedAt = now
			return job, nil
		}
		// another worker claimed it first
	}
	return nil, fmt.Errorf("claiming job: %w", ErrNotFound)
}

func (db *DB) GetJob(ctx context.Context, jobID string) (*RematchJob, error) {
	return db.scanJob(db.connection.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM rematch_jobs WHERE job_id = $1`, jobID))
}

func (db *DB) CompleteJob(ctx context.Context, jobID string) error {
	return db.setJobStatus(ctx, jobID, JobCompleted, "")
}

// FailJob records a failed attempt. The job returns to pending while it has
// attempts left, otherwise it is marked failed. The resulting status is
// returned.
func (db *DB) FailJob(ctx context.Context, jobID string, cause error) (string, error) {
	job, err := db.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	status := JobPending
	if job.Attempts >= job.MaxAttempts {
		status = JobFailed
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return status, db.setJobStatus(ctx, jobID, status, msg)
}

// ResetStaleJobs returns jobs left in processing (e.g. by a crashed worker)
// to pending, so every enqueued job is delivered at least once.
func (db *DB) ResetStaleJobs(ctx context.Context) (int, error) {
	res, err := db.connection.ExecContext(ctx,
		`UPDATE rematch_jobs SET status = $1, updated_at = $2 WHERE status = $3`,
		JobPending, db.timestamp(), JobProcessing)
	if err != nil {
		return 0, fmt.Errorf("resetting stale jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// CountJobs returns the number of jobs with the given status.
func (db *DB) CountJobs(ctx context.Context, status string) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx, `SELECT COUNT(*) FROM rematch_jobs WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s jobs: %w", status, err)
	}
	return n, nil
}

func (db *DB) setJobStatus(ctx context.Context, jobID, status, lastError string) error {
	res, err := db.connection.ExecContext(ctx,
		`UPDATE rematch_jobs SET status = $2, last_error = $3, updated_at = $4 WHERE job_id = $1`,
		jobID, status, lastError, db.timestamp())
	if err != nil {
		return fmt.Errorf("updating job %s: %w", jobID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	return nil
}

func (db *DB) scanJob(row *sql.Row) (*RematchJob, error) {
	j := &RematchJob{}
	var createdAt, updatedAt string
	err := row.Scan(&j.JobID, &j.Kind, &j.TargetID, &j.Status, &j.Attempts, &j.MaxAttempts, &j.LastError, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading job: %w", err)
	}
	j.CreatedAt, _ = time.Parse(tsLayout, createdAt)
	j.UpdatedAt, _ = time.Parse(tsLayout, updatedAt)
	return j, nil
}
