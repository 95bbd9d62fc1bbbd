// Package queue delivers re-matching jobs at least once. Jobs are either
// rows in the document store or entries in a Redis reliable list.
package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"demob-match/internal/storage"
)

// ErrEmpty is returned by Dequeue when no job is ready.
var ErrEmpty = errors.New("queue is empty")

type Queue interface {
	Enqueue(ctx context.Context, kind, targetID string) (*storage.RematchJob, error)
	// Dequeue hands out the next job. The job stays owned by the queue until
	// it is acked or nacked; unacked jobs come back after Recover.
	Dequeue(ctx context.Context) (*storage.RematchJob, error)
	Ack(ctx context.Context, job *storage.RematchJob) error
	// Nack records a failed attempt and returns the job's new status:
	// pending while attempts remain, failed otherwise.
	Nack(ctx context.Context, job *storage.RematchJob, cause error) (string, error)
	// Recover returns in-flight jobs abandoned by a previous process.
	Recover(ctx context.Context) (int, error)
}

func newJob(kind, targetID string, maxAttempts int) (*storage.RematchJob, error) {
	if kind != storage.JobKindProfile && kind != storage.JobKindPosition {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
	if targetID == "" {
		return nil, fmt.Errorf("job target is required")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &storage.RematchJob{
		JobID:       uuid.New().String(),
		Kind:        kind,
		TargetID:    targetID,
		Status:      storage.JobPending,
		MaxAttempts: maxAttempts,
	}, nil
}

// JobStore is the subset of the store backing StoreQueue.
type JobStore interface {
	EnqueueJob(ctx context.Context, job *storage.RematchJob) error
	ClaimJob(ctx context.Context) (*storage.RematchJob, error)
	CompleteJob(ctx context.Context, jobID string) error
	FailJob(ctx context.Context, jobID string, cause error) (string, error)
	ResetStaleJobs(ctx context.Context) (int, error)
}

// StoreQueue keeps jobs in the rematch_jobs table.
type StoreQueue struct {
	store       JobStore
	maxAttempts int
}

func NewStoreQueue(store JobStore, maxAttempts int) *StoreQueue {
	return &StoreQueue{store: store, maxAttempts: maxAttempts}
}

func (q *StoreQueue) Enqueue(ctx context.Context, kind, targetID string) (*storage.RematchJob, error) {
	job, err := newJob(kind, targetID, q.maxAttempts)
	if err != nil {
		return nil, err
	}
	if err := q.store.EnqueueJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (q *StoreQueue) Dequeue(ctx context.Context) (*storage.RematchJob, error) {
	job, err := q.store.ClaimJob(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEmpty
	}
	return job, err
}

func (q *StoreQueue) Ack(ctx context.Context, job *storage.RematchJob) error {
	return q.store.CompleteJob(ctx, job.JobID)
}

func (q *StoreQueue) Nack(ctx context.Context, job *storage.RematchJob, cause error) (string, error) {
	return q.store.FailJob(ctx, job.JobID, cause)
}

func (q *StoreQueue) Recover(ctx context.Context) (int, error) {
	return q.store.ResetStaleJobs(ctx)
}
