package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"demob-match/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user_id>",
	Short: "Issue a bearer token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		return issueToken(cmd, args[0], ttl)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
}

func issueToken(cmd *cobra.Command, userID string, ttl time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token, err := auth.NewService(cfg.JWT.Secret, ttl).IssueToken(userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
