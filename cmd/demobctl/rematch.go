package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"demob-match/internal/config"
	"demob-match/internal/logger"
	"demob-match/internal/matching"
	"demob-match/internal/queue"
	"demob-match/internal/storage"
)

var rematchCmd = &cobra.Command{
	Use:   "rematch <employee_id>",
	Short: "Queue re-matching for one demob profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drain, _ := cmd.Flags().GetBool("drain")
		return runRematch(cmd.Context(), args[0], drain)
	},
}

func init() {
	rootCmd.AddCommand(rematchCmd)
	rematchCmd.Flags().Bool("drain", false, "process the queue in this process until it is empty")
}

func openQueue(ctx context.Context, cfg *config.Config, db *storage.DB) (queue.Queue, func(), error) {
	if cfg.Redis.URL == "" {
		return queue.NewStoreQueue(db, cfg.Worker.MaxAttempts), func() {}, nil
	}
	rq, err := queue.NewRedisQueue(ctx, cfg.Redis.URL, cfg.Worker.MaxAttempts, time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rq, func() { rq.Close() }, nil
}

func runRematch(ctx context.Context, employeeID string, drain bool) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := storage.NewDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	q, closeQueue, err := openQueue(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeQueue()

	_, err = enqueueRematch(ctx, db, q, employeeID, log)
	if err != nil || !drain {
		return err
	}

	w := queue.NewWorker(q, matching.NewMatcher(db, log), cfg.Worker.Rate, cfg.Worker.PollInterval, log)
	n, err := w.Drain(ctx)
	if err != nil {
		return err
	}
	log.Info("queue drained", zap.Int("jobs", n))
	return nil
}

// enqueueRematch queues a profile job after checking the profile exists.
func enqueueRematch(ctx context.Context, db profileGetter, q queue.Queue, employeeID string, log *zap.Logger) (*storage.RematchJob, error) {
	if _, err := db.GetProfile(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("profile %s: %w", employeeID, err)
	}
	job, err := q.Enqueue(ctx, storage.JobKindProfile, employeeID)
	if err != nil {
		return nil, err
	}
	log.Info("rematch queued", zap.String(logger.FieldJobID, job.JobID), zap.String(logger.FieldEmployeeID, employeeID))
	return job, nil
}

type profileGetter interface {
	GetProfile(ctx context.Context, employeeID string) (*storage.DemobProfile, error)
}
