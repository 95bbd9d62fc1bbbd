package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"demob-match/internal/logger"
	"demob-match/internal/matching"
	"demob-match/internal/storage"
)

// Matcher runs the re-matching a job asks for.
type Matcher interface {
	TriggerMatching(ctx context.Context, employeeID string) (*matching.Outcome, error)
	MatchPosition(ctx context.Context, positionID string) (*matching.Outcome, error)
}

type Worker struct {
	queue   Queue
	matcher Matcher
	limiter *rate.Limiter
	poll    time.Duration
	log     *zap.Logger
}

// NewWorker builds a worker that handles at most ratePerSec jobs per second
// and sleeps for poll when the queue is empty.
func NewWorker(q Queue, m Matcher, ratePerSec float64, poll time.Duration, log *zap.Logger) *Worker {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	if poll <= 0 {
		poll = 2 * time.Second
	}
	return &Worker{
		queue:   q,
		matcher: m,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		poll:    poll,
		log:     logger.Component(log, "rematch-worker"),
	}
}

// Run recovers abandoned jobs, then processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if n, err := w.queue.Recover(ctx); err != nil {
		w.log.Warn("failed to recover in-flight jobs", zap.Error(err))
	} else if n > 0 {
		w.log.Info("recovered in-flight jobs", zap.Int("count", n))
	}
	w.log.Info("worker started", zap.Duration("poll_interval", w.poll), zap.Float64("rate", float64(w.limiter.Limit())))

	for {
		if err := w.limiter.Wait(ctx); err != nil {
			return w.stopped(ctx)
		}
		handled, err := w.RunOnce(ctx)
		if ctx.Err() != nil {
			return w.stopped(ctx)
		}
		if err != nil {
			w.log.Error("queue error", zap.Error(err))
		}
		if handled {
			continue
		}
		select {
		case <-ctx.Done():
			return w.stopped(ctx)
		case <-time.After(w.poll):
		}
	}
}

func (w *Worker) stopped(ctx context.Context) error {
	w.log.Info("worker stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// RunOnce processes a single job. It reports false when the queue was
// empty.
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.queue.Dequeue(ctx)
	if errors.Is(err, ErrEmpty) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	log := w.log.With(
		zap.String(logger.FieldJobID, job.JobID),
		zap.String("kind", job.Kind),
		zap.String("target_id", job.TargetID),
		zap.Int("attempt", job.Attempts))

	start := time.Now()
	out, runErr := w.dispatch(ctx, job)
	if runErr != nil {
		status, err := w.queue.Nack(ctx, job, runErr)
		if err != nil {
			return true, fmt.Errorf("failed to nack job %s: %w", job.JobID, err)
		}
		log.Warn("job failed", zap.Error(runErr), zap.String("status", status))
		return true, nil
	}
	if err := w.queue.Ack(ctx, job); err != nil {
		return true, fmt.Errorf("failed to ack job %s: %w", job.JobID, err)
	}
	log.Info("job completed",
		zap.Int("matches", len(out.Matches)),
		zap.Int("persisted", out.Persisted),
		zap.Duration("took", time.Since(start)))
	return true, nil
}

// Drain processes jobs until the queue is empty and returns how many were
// handled.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	n := 0
	for {
		handled, err := w.RunOnce(ctx)
		if err != nil || !handled {
			return n, err
		}
		n++
	}
}

func (w *Worker) dispatch(ctx context.Context, job *storage.RematchJob) (*matching.Outcome, error) {
	switch job.Kind {
	case storage.JobKindProfile:
		return w.matcher.TriggerMatching(ctx, job.TargetID)
	case storage.JobKindPosition:
		return w.matcher.MatchPosition(ctx, job.TargetID)
	default:
		return nil, fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
