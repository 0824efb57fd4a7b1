package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raykavin/orderalert/internal/config"
	"github.com/raykavin/orderalert/pkg/auth"
	"github.com/raykavin/orderalert/pkg/conversation"
	"github.com/raykavin/orderalert/pkg/notification"
	"github.com/raykavin/orderalert/pkg/session"
	"github.com/raykavin/orderalert/pkg/storage"
	"github.com/raykavin/orderalert/pkg/telegram"
	"github.com/raykavin/orderalert/pkg/validator"
	"github.com/raykavin/orderalert/pkg/webhook"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func buildRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot, the webhook receiver and the session validator",
		RunE:  runBot,
	}
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accounts, err := openAccounts(cfg, log)
	if err != nil {
		return err
	}
	defer accounts.Close()

	info, err := storage.NewInfoStorage(cfg.Storage.InfoPath, log)
	if err != nil {
		return fmt.Errorf("failed to open info storage: %w", err)
	}
	defer info.Close()

	if _, err := info.Load(ctx); err != nil {
		return err
	}

	bot, err := telegram.New(cfg.Telegram.Token, log)
	if err != nil {
		return err
	}

	sessions := session.NewStore()
	authClient := auth.NewClient(cfg.Auth.Endpoint, log, auth.WithTimeout(cfg.Auth.Timeout))
	dispatcher := notification.NewDispatcher(accounts, bot, log)

	engine := conversation.New(
		accounts,
		info,
		authClient,
		sessions,
		dispatcher,
		log,
		conversation.WithSupportContact(cfg.Admin.SupportContact),
		conversation.WithRolePolicy(cfg.Policy()),
	)
	if err := bot.Bind(engine); err != nil {
		return err
	}

	serverConfig := webhook.DefaultConfig()
	serverConfig.Addr = cfg.HTTP.Addr
	server := webhook.NewServer(serverConfig, accounts, dispatcher, log)

	sessionValidator := validator.New(
		ctx,
		accounts,
		authClient,
		sessions,
		dispatcher,
		log,
		validator.WithInterval(cfg.Validator.Interval),
		validator.WithRolePolicy(cfg.Policy()),
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	bot.Start(ctx)
	sessionValidator.Start()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err = <-serverErr:
		if err != nil {
			log.WithError(err).Error("webhook server failed")
		}
	}

	sessionValidator.Stop()
	bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
		log.WithError(shutdownErr).Warn("webhook server did not stop cleanly")
	}

	log.Info("stopped")
	return err
}
