package validator

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/raykavin/orderalert/internal/chattest"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/raykavin/orderalert/pkg/notification"
	"github.com/raykavin/orderalert/pkg/session"
	"github.com/raykavin/orderalert/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// platform answers Validate from a per-login table
type platform struct {
	mu       sync.Mutex
	rejected map[string]bool
	broken   map[string]bool
	calls    []string
}

func (p *platform) Verify(context.Context, string, string, string) (core.AuthResult, error) {
	return core.AuthResult{}, nil
}

func (p *platform) Validate(_ context.Context, login, _ string) (core.AuthResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, login)
	if p.broken[login] {
		return core.AuthResult{}, core.ErrAuthUnavailable
	}
	return core.AuthResult{OK: !p.rejected[login], Login: login}, nil
}

func (p *platform) called() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

type fixture struct {
	accounts *storage.SQLStorage
	sessions *session.Store
	chat     *chattest.Recorder
	platform *platform
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	accounts, err := storage.NewFromSQLite(filepath.Join(t.TempDir(), "users.db"), storage.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = accounts.Close() })

	return &fixture{
		accounts: accounts,
		sessions: session.NewStore(),
		chat:     chattest.NewRecorder(),
		platform: &platform{rejected: map[string]bool{}, broken: map[string]bool{}},
	}
}

func (f *fixture) validator(ctx context.Context, options ...Option) *Validator {
	dispatcher := notification.NewDispatcher(f.accounts, f.chat, logger.Nop())
	return New(ctx, f.accounts, f.platform, f.sessions, dispatcher, logger.Nop(), options...)
}

func (f *fixture) link(t *testing.T, id int64, handle, login string) {
	t.Helper()
	_, err := f.accounts.UpsertAccount(context.Background(), id, handle, login)
	require.NoError(t, err)
	f.sessions.SetState(id, session.StateMainMenu)
}

func TestValidator_Run(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.link(t, 1, "alice", "good")
	f.link(t, 2, "bob", "revoked")
	f.link(t, 3, "carol", "flaky")
	f.link(t, 4, "dave", "banned")
	f.link(t, 5, "ddenuxe", "ddenuxe")
	require.NoError(t, f.accounts.SetBanned(ctx, 4, true))

	f.platform.rejected["revoked"] = true
	f.platform.rejected["banned"] = true
	f.platform.broken["flaky"] = true

	v := f.validator(ctx, WithRolePolicy(core.RolePolicy{Handles: []string{"ddenuxe"}}))
	result := v.Run(ctx)

	assert.Equal(t, Result{Checked: 3, Evicted: 1, Failed: 1}, result)
	assert.ElementsMatch(t, []string{"good", "revoked", "flaky"}, f.platform.called())

	_, err := f.accounts.Account(ctx, 2)
	require.ErrorIs(t, err, core.ErrAccountNotFound)
	_, tracked := f.sessions.Get(2)
	assert.False(t, tracked)

	notices := f.chat.To(2)
	require.Len(t, notices, 1)
	assert.Equal(t, evictionNotice, notices[0].Text)

	for _, kept := range []int64{1, 3, 4, 5} {
		_, err := f.accounts.Account(ctx, kept)
		require.NoError(t, err, "account %d", kept)
	}
	assert.Empty(t, f.chat.To(3))
}

func TestValidator_StartStop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.link(t, 1, "alice", "revoked")
	f.platform.rejected["revoked"] = true

	v := f.validator(ctx, WithInterval(10*time.Millisecond))
	v.Start()
	assert.Equal(t, StatusRunning, v.Status())

	require.Eventually(t, func() bool {
		_, err := f.accounts.Account(ctx, 1)
		return err != nil
	}, time.Second, 10*time.Millisecond)

	v.Stop()
	assert.Equal(t, StatusStopped, v.Status())

	calls := len(f.platform.called())
	f.link(t, 2, "bob", "other")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, len(f.platform.called()))
}

func TestValidator_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(t)

	v := f.validator(ctx, WithInterval(time.Hour))
	v.Start()
	cancel()

	v.Stop()
	assert.Equal(t, StatusStopped, v.Status())
}
