package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"demob-match/internal/demob"
	"demob-match/internal/logger"
	"demob-match/internal/storage"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill-priority",
	Short: "Derive retention_priority for stored profiles that have none",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		limit, _ := cmd.Flags().GetInt("limit")
		return runBackfill(cmd.Context(), dryRun, limit)
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().Bool("dry-run", true, "if true, do not persist updates; just log changes")
	backfillCmd.Flags().Int("limit", 200, "max number of profiles to scan in one run")
}

type profileStore interface {
	ListProfiles(ctx context.Context, limit int) ([]*storage.DemobProfile, error)
	SaveProfile(ctx context.Context, p *storage.DemobProfile) error
}

func runBackfill(ctx context.Context, dryRun bool, limit int) error {
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

	_, err = backfillPriority(ctx, db, limit, dryRun, log)
	return err
}

// backfillPriority scans up to limit profiles and fills in missing
// priorities. It returns how many profiles needed one.
func backfillPriority(ctx context.Context, store profileStore, limit int, dryRun bool, log *zap.Logger) (int, error) {
	log = logger.Component(log, "backfill")

	profiles, err := store.ListProfiles(ctx, limit)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, p := range profiles {
		if !demob.EnsurePriority(p) {
			continue
		}
		changed++
		fields := []zap.Field{
			zap.String(logger.FieldEmployeeID, p.EmployeeID),
			zap.String("retention_priority", p.InternalMetrics.RetentionPriority),
		}
		if dryRun {
			log.Info("[dry-run] would set priority", fields...)
			continue
		}
		if err := store.SaveProfile(ctx, p); err != nil {
			log.Error("failed to save profile", append(fields, zap.Error(err))...)
			continue
		}
		log.Info("priority set", fields...)
	}

	log.Info("backfill run complete",
		zap.Int("scanned", len(profiles)),
		zap.Int("changed", changed),
		zap.Bool("dry_run", dryRun),
	)
	return changed, nil
}
