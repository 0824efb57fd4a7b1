package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLStorage {
	t.Helper()

	config := DefaultConfig()
	config.Policy = core.RolePolicy{Handles: []string{"boss"}, IDs: []int64{42}}

	db, err := NewFromSQLite(filepath.Join(t.TempDir(), "users.db"), config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLStorage_UpsertAccount(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	account, err := db.UpsertAccount(ctx, 1, "trader", "login1")
	require.NoError(t, err)
	require.Equal(t, int64(1), account.TelegramID)
	require.Equal(t, "login1", account.Login)
	require.Equal(t, core.RoleUser, account.Role)
	require.False(t, account.OrderAlerts)

	t.Run("replace resets flags", func(t *testing.T) {
		require.NoError(t, db.SetAlerts(ctx, 1, core.EventOrder, true))
		require.NoError(t, db.SetBanned(ctx, 1, true))

		account, err := db.UpsertAccount(ctx, 1, "trader", "login2")
		require.NoError(t, err)
		require.Equal(t, "login2", account.Login)
		require.False(t, account.OrderAlerts)
		require.False(t, account.Banned)

		all, err := db.Accounts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("role policy", func(t *testing.T) {
		byHandle, err := db.UpsertAccount(ctx, 2, "boss", "b")
		require.NoError(t, err)
		require.Equal(t, core.RoleAdmin, byHandle.Role)

		byID, err := db.UpsertAccount(ctx, 42, "someone", "c")
		require.NoError(t, err)
		require.Equal(t, core.RoleAdmin, byID.Role)
	})
}

func TestSQLStorage_AccountNotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	_, err := db.Account(ctx, 99)
	require.ErrorIs(t, err, core.ErrAccountNotFound)
	require.ErrorIs(t, db.SetBanned(ctx, 99, true), core.ErrAccountNotFound)
	require.NoError(t, db.DeleteAccount(ctx, 99))
}

func TestSQLStorage_AccountsByLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	for id, login := range map[int64]string{1: "shared", 2: "shared", 3: "other"} {
		_, err := db.UpsertAccount(ctx, id, "", login)
		require.NoError(t, err)
	}

	shared, err := db.AccountsByLogin(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, shared, 2)

	none, err := db.AccountsByLogin(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSQLStorage_FiltersAndStats(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	_, err := db.UpsertAccount(ctx, 1, "a", "a")
	require.NoError(t, err)
	_, err = db.UpsertAccount(ctx, 2, "boss", "b")
	require.NoError(t, err)
	_, err = db.UpsertAccount(ctx, 3, "c", "c")
	require.NoError(t, err)

	require.NoError(t, db.SetBanned(ctx, 3, true))
	require.NoError(t, db.SetAlerts(ctx, 1, core.EventOrder, true))
	require.NoError(t, db.SetAlerts(ctx, 2, core.EventAppeal, true))

	active, err := db.Accounts(ctx, core.WithBanned(false))
	require.NoError(t, err)
	require.Len(t, active, 2)

	admins, err := db.Accounts(ctx, core.WithRole(core.RoleAdmin))
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, int64(2), admins[0].TelegramID)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, core.Stats{
		Total:        3,
		Active:       2,
		Banned:       1,
		Admins:       1,
		OrderAlerts:  1,
		AppealAlerts: 1,
	}, stats)
}

func TestSQLStorage_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	_, err := db.UpsertAccount(ctx, 7, "x", "x")
	require.NoError(t, err)
	require.NoError(t, db.DeleteAccount(ctx, 7))

	_, err = db.Account(ctx, 7)
	require.ErrorIs(t, err, core.ErrAccountNotFound)
}

func TestSQLStorage_SetRoleAndLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	_, err := db.UpsertAccount(ctx, 5, "x", "old")
	require.NoError(t, err)
	require.NoError(t, db.SetRole(ctx, 5, core.RoleAdmin))
	require.NoError(t, db.SetLogin(ctx, 5, "new"))

	account, err := db.Account(ctx, 5)
	require.NoError(t, err)
	require.True(t, account.IsAdmin())
	require.Equal(t, "new", account.Login)
	require.ErrorIs(t, db.SetAlerts(ctx, 5, core.EventKind("x"), true), core.ErrUnknownEventKind)
}

func TestSQLStorage_ToggleTwiceRestoresFlag(t *testing.T) {
	ctx := context.Background()
	db := newTestStorage(t)

	_, err := db.UpsertAccount(ctx, 1, "x", "x")
	require.NoError(t, err)

	properties := gopter.NewProperties(nil)
	properties.Property("toggling twice restores only the toggled flag", prop.ForAll(
		func(order, appeal, pickOrder bool) bool {
			if db.SetAlerts(ctx, 1, core.EventOrder, order) != nil ||
				db.SetAlerts(ctx, 1, core.EventAppeal, appeal) != nil {
				return false
			}

			kind := core.EventAppeal
			if pickOrder {
				kind = core.EventOrder
			}

			for i := 0; i < 2; i++ {
				account, err := db.Account(ctx, 1)
				if err != nil {
					return false
				}
				if db.SetAlerts(ctx, 1, kind, !account.Alerts(kind)) != nil {
					return false
				}
			}

			account, err := db.Account(ctx, 1)
			return err == nil && account.OrderAlerts == order && account.AppealAlerts == appeal
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
