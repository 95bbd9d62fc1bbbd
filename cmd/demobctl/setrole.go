package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"demob-match/internal/auth"
	"demob-match/internal/logger"
	"demob-match/internal/storage"
)

var setRoleCmd = &cobra.Command{
	Use:   "set-role <user_id> <role>",
	Short: "Assign a role to a user, provisioning the user when unknown",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		return setRole(cmd.Context(), db, args[0], args[1], log)
	},
}

func init() {
	rootCmd.AddCommand(setRoleCmd)
}

type userStore interface {
	EnsureUser(ctx context.Context, userID, defaultRole string) (*storage.User, bool, error)
	SetUserRole(ctx context.Context, userID, role string) error
}

func setRole(ctx context.Context, store userStore, userID, role string, log *zap.Logger) error {
	log = logger.Component(log, "set-role")
	if !auth.IsRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	user, created, err := store.EnsureUser(ctx, userID, role)
	if err != nil {
		return err
	}
	previous := user.Role
	if !created && previous != role {
		if err := store.SetUserRole(ctx, userID, role); err != nil {
			return err
		}
	}

	log.Info("role assigned",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.String("previous_role", previous),
		zap.Bool("created", created),
	)
	return nil
}
