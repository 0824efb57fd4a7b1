package main

import (
	"fmt"
	"os"

	"github.com/raykavin/orderalert/internal/config"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/raykavin/orderalert/pkg/logger/logrus"
	"github.com/raykavin/orderalert/pkg/logger/zerolog"
	"github.com/raykavin/orderalert/pkg/storage"
	"github.com/spf13/cobra"
)

const logTimeFormat = "2006-01-02 15:04:05"

func main() {
	rootCmd := &cobra.Command{
		Use:          "orderalert",
		Short:        "Order and appeal alerts for platform traders on Telegram",
		Version:      "1.0.0",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildRunCmd(),
		buildSeedCmd(),
		buildUsersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger selected by LOG_DRIVER
func newLogger(cfg config.LogConfig) logger.Logger {
	level := logger.ParseLevel(cfg.Level)

	if cfg.Driver == "logrus" {
		return logrus.New(os.Stdout, level, cfg.JSON)
	}
	return zerolog.New(level, logTimeFormat, !cfg.JSON, cfg.JSON)
}

func openAccounts(cfg *config.Config, log logger.Logger) (*storage.SQLStorage, error) {
	storageConfig := storage.DefaultConfig()
	storageConfig.Policy = cfg.Policy()
	storageConfig.Log = log

	accounts, err := storage.NewFromSQLite(cfg.Storage.DBPath, storageConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open account storage: %w", err)
	}
	return accounts, nil
}
