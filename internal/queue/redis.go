package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"demob-match/internal/storage"
)

const defaultKeyPrefix = "demob:rematch"

// RedisQueue is a reliable list: producers LPUSH onto the pending list,
// consumers BLMOVE entries onto a processing list and LREM them on ack.
// Entries left on the processing list are pushed back by Recover.
type RedisQueue struct {
	rdb         *redis.Client
	pending     string
	processing  string
	failed      string
	maxAttempts int
	block       time.Duration

	mu       sync.Mutex
	inflight map[string]string // job id -> raw entry on the processing list
}

// NewRedisQueue connects using a redis:// URL. block bounds how long
// Dequeue waits for a job.
func NewRedisQueue(ctx context.Context, redisURL string, maxAttempts int, block time.Duration) (*RedisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisQueue(rdb, defaultKeyPrefix, maxAttempts, block), nil
}

func newRedisQueue(rdb *redis.Client, prefix string, maxAttempts int, block time.Duration) *RedisQueue {
	if block <= 0 {
		block = time.Second
	}
	return &RedisQueue{
		rdb:         rdb,
		pending:     prefix + ":pending",
		processing:  prefix + ":processing",
		failed:      prefix + ":failed",
		maxAttempts: maxAttempts,
		block:       block,
		inflight:    map[string]string{},
	}
}

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}

func (q *RedisQueue) push(ctx context.Context, key string, job *storage.RematchJob) error {
	job.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", job.JobID, err)
	}
	if err := q.rdb.LPush(ctx, key, raw).Err(); err != nil {
		return fmt.Errorf("pushing job %s: %w", job.JobID, err)
	}
	return nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, kind, targetID string) (*storage.RematchJob, error) {
	job, err := newJob(kind, targetID, q.maxAttempts)
	if err != nil {
		return nil, err
	}
	job.CreatedAt = time.Now().UTC()
	if err := q.push(ctx, q.pending, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*storage.RematchJob, error) {
	raw, err := q.rdb.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", q.block).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue: %w", err)
	}

	job := &storage.RematchJob{}
	if err := json.Unmarshal([]byte(raw), job); err != nil {
		// unreadable entries would loop forever; park them
		q.rdb.LRem(ctx, q.processing, 1, raw)
		q.rdb.LPush(ctx, q.failed, raw)
		return nil, fmt.Errorf("decoding job: %w", err)
	}
	job.Status = storage.JobProcessing
	job.Attempts++

	q.mu.Lock()
	q.inflight[job.JobID] = raw
	q.mu.Unlock()
	return job, nil
}

func (q *RedisQueue) release(ctx context.Context, job *storage.RematchJob) error {
	q.mu.Lock()
	raw, ok := q.inflight[job.JobID]
	delete(q.inflight, job.JobID)
	q.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s: %w", job.JobID, storage.ErrNotFound)
	}
	if err := q.rdb.LRem(ctx, q.processing, 1, raw).Err(); err != nil {
		return fmt.Errorf("releasing job %s: %w", job.JobID, err)
	}
	return nil
}

func (q *RedisQueue) Ack(ctx context.Context, job *storage.RematchJob) error {
	if err := q.release(ctx, job); err != nil {
		return err
	}
	job.Status = storage.JobCompleted
	return nil
}

func (q *RedisQueue) Nack(ctx context.Context, job *storage.RematchJob, cause error) (string, error) {
	if err := q.release(ctx, job); err != nil {
		return "", err
	}
	if cause != nil {
		job.LastError = cause.Error()
	}
	key := q.pending
	job.Status = storage.JobPending
	if job.Attempts >= job.MaxAttempts {
		key = q.failed
		job.Status = storage.JobFailed
	}
	if err := q.push(ctx, key, job); err != nil {
		return "", err
	}
	return job.Status, nil
}

// Recover moves everything on the processing list back to pending. Call it
// before any consumer of this queue starts.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	n := 0
	for {
		err := q.rdb.LMove(ctx, q.processing, q.pending, "RIGHT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("recovering jobs: %w", err)
		}
		n++
	}
}
