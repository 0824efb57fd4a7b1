package conversation

import (
	"context"
	"fmt"
	"html"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/session"
)

func (e *Engine) mainMenu(id int64, account *core.Account, text string) []core.Message {
	e.sessions.SetState(id, session.StateMainMenu)

	orders := EnableOrdersButton
	if account.OrderAlerts {
		orders = DisableOrdersButton
	}
	appeals := EnableAppealsButton
	if account.AppealAlerts {
		appeals = DisableAppealsButton
	}

	rows := [][]string{
		{ProfileButton, InfoButton},
		{orders, appeals},
	}
	if account.IsAdmin() {
		rows = append(rows, []string{AdminButton})
	}

	return []core.Message{core.Text(text).WithKeyboard(rows...)}
}

func (e *Engine) toggle(ctx context.Context, id int64, account *core.Account, kind core.EventKind, enabled bool) ([]core.Message, error) {
	if err := e.accounts.SetAlerts(ctx, id, kind, enabled); err != nil {
		return nil, err
	}

	var text string
	switch {
	case kind == core.EventOrder && enabled:
		account.OrderAlerts, text = true, textOrdersOn
	case kind == core.EventOrder:
		account.OrderAlerts, text = false, textOrdersOff
	case enabled:
		account.AppealAlerts, text = true, textAppealsOn
	default:
		account.AppealAlerts, text = false, textAppealsOff
	}

	e.log.WithFields(map[string]any{
		"telegram_id": id,
		"kind":        kind,
		"enabled":     enabled,
	}).Info("alerts toggled")

	return e.mainMenu(id, account, text), nil
}

func flagText(enabled bool) string {
	if enabled {
		return textEnabled
	}
	return textDisabled
}

func profileText(account *core.Account) string {
	return fmt.Sprintf(textProfile, inlineCode(account.Login), flagText(account.OrderAlerts), flagText(account.AppealAlerts))
}

func (e *Engine) profile(id int64, account *core.Account) []core.Message {
	e.sessions.SetState(id, session.StateProfile)
	return []core.Message{
		core.Markdown(profileText(account)).WithKeyboard([]string{BackButton}, []string{LogoutButton}),
	}
}

func cancelLogoutButton() []core.InlineButton {
	return []core.InlineButton{{Text: textCancelButton, Data: CancelLogoutData}}
}

func (e *Engine) logoutPrompt(id int64, account *core.Account) []core.Message {
	e.sessions.Update(id, func(s *session.Session) {
		s.State = session.StateLogoutConfirm
		s.LogoutLogin = account.Login
	})

	return []core.Message{
		core.Text(textLogoutPrompt).WithoutKeyboard(),
		core.Text(textLogoutCancel).WithInline(cancelLogoutButton()),
	}
}

func (e *Engine) confirmLogout(ctx context.Context, id int64, typed string) ([]core.Message, error) {
	current, _ := e.sessions.Get(id)
	if current.LogoutLogin == "" || typed != current.LogoutLogin {
		return []core.Message{core.Text(textLogoutWrong).WithInline(cancelLogoutButton())}, nil
	}

	if err := e.accounts.DeleteAccount(ctx, id); err != nil {
		return nil, err
	}
	e.sessions.Clear(id)

	e.log.WithField("telegram_id", id).Info("logged out")
	return []core.Message{core.Markdown(textLoggedOut).WithoutKeyboard()}, nil
}

func (e *Engine) cancelLogout(id int64, account *core.Account) []core.Message {
	e.sessions.Update(id, func(s *session.Session) { s.LogoutLogin = "" })
	e.log.WithField("telegram_id", id).Info("logout canceled")
	return e.profile(id, account)
}

func (e *Engine) infoView(ctx context.Context, id int64, account *core.Account) ([]core.Message, error) {
	text, err := e.info.Load(ctx)
	if err != nil {
		return nil, err
	}

	e.sessions.SetState(id, session.StateInfo)

	rows := [][]string{{BackButton}}
	if account.IsAdmin() {
		rows = append(rows, []string{EditInfoButton})
	}

	body := fmt.Sprintf(textInfo, html.EscapeString(text), html.EscapeString(e.support))
	return []core.Message{core.HTML(body).WithKeyboard(rows...)}, nil
}
