package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/session"
)

func (e *Engine) start(ctx context.Context, sender Sender) ([]core.Message, error) {
	log := e.log.WithField("telegram_id", sender.ID)

	account, err := e.accounts.Account(ctx, sender.ID)
	switch {
	case errors.Is(err, core.ErrAccountNotFound):
	case err != nil:
		return nil, err
	case account.Banned:
		e.sessions.Clear(sender.ID)
		return e.banned(), nil
	}

	e.sessions.Clear(sender.ID)

	if e.policy.Privileged(sender.Username) {
		log.WithField("handle", sender.Username).Warn("privileged handle entered without authentication")

		account, err := e.accounts.UpsertAccount(ctx, sender.ID, sender.Username, sender.Username)
		if err != nil {
			return nil, err
		}
		if !account.IsAdmin() {
			if err := e.accounts.SetRole(ctx, sender.ID, core.RoleAdmin); err != nil {
				return nil, err
			}
			account.Role = core.RoleAdmin
		}

		e.sessions.Reset(sender.ID, session.StateMainMenu)
		greeting := core.Markdown(fmt.Sprintf(textPrivileged, escapeMarkdown(sender.Greeting()))).WithoutKeyboard()
		return append([]core.Message{greeting}, e.mainMenu(sender.ID, account, textAuthorized)...), nil
	}

	log.Info("conversation started")
	e.sessions.Reset(sender.ID, session.StateLogin)

	return []core.Message{
		core.Markdown(fmt.Sprintf(textWelcome, escapeMarkdown(sender.Greeting()))).WithoutKeyboard(),
		core.Text(textAskLogin),
	}, nil
}

func (e *Engine) unlock(sender Sender) []core.Message {
	e.log.WithField("telegram_id", sender.ID).Info("account unlocked, asking for login")
	e.sessions.Reset(sender.ID, session.StateLogin)

	return []core.Message{
		core.Text(textUnlocked),
		core.Text(textAskLogin),
	}
}

func (e *Engine) submitLogin(sender Sender, login string) []core.Message {
	e.sessions.Update(sender.ID, func(s *session.Session) {
		s.Login = login
		s.State = session.StatePassword
	})

	e.log.WithFields(map[string]any{"telegram_id": sender.ID, "login": login}).Info("login entered")
	return []core.Message{core.Text(textAskPass)}
}

func (e *Engine) submitPassword(ctx context.Context, sender Sender, password string) ([]core.Message, error) {
	log := e.log.WithField("telegram_id", sender.ID)

	current, _ := e.sessions.Get(sender.ID)
	if current.Login == "" {
		e.sessions.SetState(sender.ID, session.StateLogin)
		return []core.Message{core.Text(textAskLogin)}, nil
	}

	result, err := e.auth.Verify(ctx, current.Login, password, sender.Handle())
	if err != nil {
		log.WithError(err).Error("auth request failed")
		e.failLogin(sender.ID)
		return []core.Message{core.Text(textAuthFailed)}, nil
	}

	if !result.OK {
		log.WithField("login", current.Login).Info("credentials rejected")
		e.failLogin(sender.ID)
		return []core.Message{core.Text(textRejected)}, nil
	}

	existing, err := e.accounts.Account(ctx, sender.ID)
	switch {
	case errors.Is(err, core.ErrAccountNotFound):
	case err != nil:
		return nil, err
	case existing.Banned:
		e.sessions.Clear(sender.ID)
		return e.banned(), nil
	}

	account, err := e.accounts.UpsertAccount(ctx, sender.ID, sender.Handle(), result.Login)
	if err != nil {
		return nil, err
	}

	e.sessions.Update(sender.ID, func(s *session.Session) {
		s.Login = ""
		s.Attempts = 0
	})

	log.WithField("login", result.Login).Info("authorized")
	return e.mainMenu(sender.ID, account, textAuthorized), nil
}

func (e *Engine) failLogin(id int64) {
	e.sessions.Update(id, func(s *session.Session) {
		s.Attempts++
		s.State = session.StateLogin
	})
}
