// Package validator periodically re-checks linked trader logins with the
// platform and unlinks the ones it explicitly rejects
package validator

import (
	"context"
	"sync"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/raykavin/orderalert/pkg/notification"
	"github.com/raykavin/orderalert/pkg/session"
)

// DefaultInterval is the pause between two validation passes
const DefaultInterval = time.Hour

const evictionNotice = "⚠️ *Сессия истекла*\n\nПожалуйста, авторизуйтесь снова, используя команду /start"

// Status represents the validator loop state
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
)

// Result summarizes one validation pass
type Result struct {
	Checked int
	Evicted int
	Failed  int
}

// Validator walks every active account on a ticker
type Validator struct {
	ctx        context.Context
	accounts   core.AccountStorage
	auth       core.Authenticator
	sessions   *session.Store
	dispatcher *notification.Dispatcher
	policy     core.RolePolicy
	log        logger.Logger
	interval   time.Duration

	mu     sync.Mutex
	status Status
	finish chan bool
}

// Option is a function that configures a Validator
type Option func(*Validator)

// WithInterval sets the pause between passes
func WithInterval(interval time.Duration) Option {
	return func(v *Validator) {
		if interval > 0 {
			v.interval = interval
		}
	}
}

// WithRolePolicy excludes privileged handles, which never authenticated with
// the platform, from validation
func WithRolePolicy(policy core.RolePolicy) Option {
	return func(v *Validator) {
		v.policy = policy
	}
}

func New(
	ctx context.Context,
	accounts core.AccountStorage,
	auth core.Authenticator,
	sessions *session.Store,
	dispatcher *notification.Dispatcher,
	log logger.Logger,
	options ...Option,
) *Validator {
	v := &Validator{
		ctx:        ctx,
		accounts:   accounts,
		auth:       auth,
		sessions:   sessions,
		dispatcher: dispatcher,
		log:        log,
		interval:   DefaultInterval,
		status:     StatusStopped,
		finish:     make(chan bool),
	}

	for _, option := range options {
		option(v)
	}

	return v
}

// Status returns the current loop status
func (v *Validator) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Start runs a pass on every tick in its own goroutine
func (v *Validator) Start() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.status == StatusRunning {
		return
	}
	v.status = StatusRunning

	go func() {
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				v.Run(v.ctx)
			case <-v.ctx.Done():
				return
			case <-v.finish:
				return
			}
		}
	}()

	v.log.WithField("interval", v.interval.String()).Info("session validator started")
}

// Stop ends the loop
func (v *Validator) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.status != StatusRunning {
		return
	}
	v.status = StatusStopped

	select {
	case v.finish <- true:
	case <-v.ctx.Done():
	}
	v.log.Info("session validator stopped")
}

// Run validates every non banned account once. Only an explicit rejection
// unlinks an account; lookup or transport errors keep it.
func (v *Validator) Run(ctx context.Context) Result {
	var result Result

	accounts, err := v.accounts.Accounts(ctx, core.WithBanned(false))
	if err != nil {
		v.log.WithError(err).Error("failed to list accounts for validation")
		return result
	}

	for _, account := range accounts {
		if ctx.Err() != nil {
			break
		}
		if account.Login == "" || v.policy.Privileged(account.Handle) {
			continue
		}

		result.Checked++
		log := v.log.WithFields(map[string]any{"telegram_id": account.TelegramID, "login": account.Login})

		check, err := v.auth.Validate(ctx, account.Login, account.Handle)
		if err != nil {
			result.Failed++
			log.WithError(err).Warn("validation failed, keeping account")
			continue
		}
		if check.OK {
			continue
		}

		if err := v.accounts.DeleteAccount(ctx, account.TelegramID); err != nil {
			result.Failed++
			log.WithError(err).Error("failed to unlink rejected account")
			continue
		}

		v.sessions.Clear(account.TelegramID)
		v.dispatcher.Notify(ctx, account.TelegramID, core.Markdown(evictionNotice).WithoutKeyboard())

		result.Evicted++
		log.Info("login rejected by the platform, account unlinked")
	}

	v.log.WithFields(map[string]any{
		"checked": result.Checked,
		"evicted": result.Evicted,
		"failed":  result.Failed,
	}).Debug("validation pass finished")

	return result
}
