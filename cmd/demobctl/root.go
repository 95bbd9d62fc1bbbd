package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"demob-match/internal/auth"
	"demob-match/internal/config"
	"demob-match/internal/logger"
	apiclient "demob-match/pkg/http"
)

const (
	app = "demobctl"

	defaultServer = "http://localhost:8080"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "demobctl manages demob profiles and re-matching for the demob match service",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file (environment and .env are always read)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("server", defaultServer, "base URL of the demob match API")
	rootCmd.PersistentFlags().String("token", "", "bearer token; minted from JWT_SECRET for --user when empty")
	rootCmd.PersistentFlags().String("user", app, "caller id used when minting a token")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))

	viper.BindEnv("server", "DEMOB_SERVER")
	viper.BindEnv("token", "DEMOB_TOKEN")
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// apiClient builds a client for --server, minting a token when none is given.
func apiClient(timeout time.Duration) (*apiclient.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("no --token given and cannot mint one: %w", err)
		}
		token, err = auth.NewService(cfg.JWT.Secret, auth.DefaultTokenTTL).IssueToken(viper.GetString("user"))
		if err != nil {
			return nil, err
		}
	}
	return apiclient.NewClient(viper.GetString("server"), token, timeout), nil
}
