package main

import (
	"fmt"

	"github.com/raykavin/orderalert/internal/config"
	"github.com/raykavin/orderalert/pkg/conversation"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/spf13/cobra"
)

type seedAccount struct {
	id     int64
	handle string
	login  string
	role   core.Role
}

// test accounts created by the seed command
var seedAccounts = []seedAccount{
	{id: 123456789, handle: "test_admin", login: "admin", role: core.RoleAdmin},
	{id: 987654321, handle: "test_user", login: "user", role: core.RoleUser},
}

func buildSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the test admin and test user accounts",
		RunE:  runSeed,
	}
}

func buildUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Print every stored account",
		RunE:  runUsers,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.Log)
	accounts, err := openAccounts(cfg, log)
	if err != nil {
		return err
	}
	defer accounts.Close()

	for _, seed := range seedAccounts {
		if _, err := accounts.UpsertAccount(cmd.Context(), seed.id, seed.handle, seed.login); err != nil {
			return err
		}
		if err := accounts.SetRole(cmd.Context(), seed.id, seed.role); err != nil {
			return err
		}
		log.WithFields(map[string]any{"telegram_id": seed.id, "role": seed.role}).Info("account seeded")
	}

	return nil
}

func runUsers(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	accounts, err := openAccounts(cfg, newLogger(cfg.Log))
	if err != nil {
		return err
	}
	defer accounts.Close()

	list, err := accounts.Accounts(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), conversation.AccountTable(list))
	return nil
}
