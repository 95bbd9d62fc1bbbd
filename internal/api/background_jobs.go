package api

import (
	"context"

	"go.uber.org/zap"

	"demob-match/internal/logger"
	"demob-match/internal/storage"
)

// StartBackgroundWorkers runs the re-match worker until ctx is cancelled.
// The returned channel is closed once the worker has stopped.
func (a *API) StartBackgroundWorkers(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.worker.Run(ctx); err != nil {
			a.log.Error("re-match worker exited", zap.Error(err))
		}
	}()
	a.log.Info("background workers started")
	return done
}

// queueRematch enqueues a re-match for a profile or a position. The job
// survives restarts; the worker picks it up asynchronously.
func (a *API) queueRematch(ctx context.Context, kind, targetID string) (*storage.RematchJob, error) {
	job, err := a.queue.Enqueue(ctx, kind, targetID)
	if err != nil {
		a.log.Error("failed to queue re-match",
			zap.String("kind", kind),
			zap.String("target_id", targetID),
			zap.Error(err))
		return nil, err
	}
	a.log.Debug("queued re-match",
		zap.String(logger.FieldJobID, job.JobID),
		zap.String("kind", kind),
		zap.String("target_id", targetID))
	return job, nil
}
