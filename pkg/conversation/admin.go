package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/session"
)

func (e *Engine) adminMenu(id int64) []core.Message {
	e.sessions.Update(id, func(s *session.Session) {
		s.State = session.StateAdminMenu
		s.Draft = ""
	})

	return []core.Message{core.Markdown(textAdminMenu).WithKeyboard(adminKeyboard()...)}
}

func adminKeyboard() [][]string {
	return [][]string{
		{BroadcastButton, UsersButton},
		{StatsButton, EditInfoButton},
		{BackButton},
	}
}

func (e *Engine) broadcastPrompt(id int64) []core.Message {
	e.sessions.SetState(id, session.StateBroadcast)
	return []core.Message{core.Markdown(textBroadcastAsk).WithKeyboard([]string{BackButton})}
}

func (e *Engine) broadcastDraft(id int64, text string) []core.Message {
	if strings.TrimSpace(text) == "" {
		return e.broadcastPrompt(id)
	}

	e.sessions.Update(id, func(s *session.Session) {
		s.State = session.StateBroadcastConfirm
		s.Draft = text
	})

	return []core.Message{
		core.Text(fmt.Sprintf(textBroadcastView, text)).WithKeyboard([]string{ConfirmSendButton}, []string{BackButton}),
	}
}

func (e *Engine) broadcastSend(ctx context.Context, id int64) ([]core.Message, error) {
	current, _ := e.sessions.Get(id)
	if current.Draft == "" {
		return e.broadcastPrompt(id), nil
	}

	report, err := e.dispatcher.Broadcast(ctx, current.Draft)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{
		"admin_id": id,
		"sent":     report.Sent,
		"failed":   report.Failed,
	}).Info("broadcast sent")

	done := core.Markdown(fmt.Sprintf(textBroadcastDone, report.Sent, report.Failed))
	return append([]core.Message{done}, e.adminMenu(id)...), nil
}

func accountLabel(account *core.Account) string {
	var status string
	if account.IsAdmin() {
		status += "👑 "
	}
	if account.Banned {
		status += "🚫 "
	}
	return status + account.DisplayName()
}

func (e *Engine) userList(ctx context.Context, id int64) ([]core.Message, error) {
	accounts, err := e.accounts.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	e.sessions.SetState(id, session.StateUserList)

	if len(accounts) == 0 {
		return []core.Message{core.Markdown(textUsersEmpty).WithKeyboard([]string{BackButton})}, nil
	}

	rows := make([][]core.InlineButton, 0, len(accounts))
	for _, account := range accounts {
		target := strconv.FormatInt(account.TelegramID, 10)
		action := textBanAction
		if account.Banned {
			action = textUnbanAction
		}

		rows = append(rows, []core.InlineButton{
			{Text: accountLabel(account), Data: UserPrefix + target},
			{Text: action, Data: BanUserPrefix + target},
		})
	}

	return []core.Message{
		core.Markdown(textUsersHeader).WithKeyboard([]string{BackButton}),
		core.Text(textUsersInline).WithInline(rows...),
	}, nil
}

func (e *Engine) stats(ctx context.Context, id int64) ([]core.Message, error) {
	stats, err := e.accounts.Stats(ctx)
	if err != nil {
		return nil, err
	}

	e.sessions.SetState(id, session.StateAdminMenu)

	text := fmt.Sprintf(textStats,
		stats.Total, stats.Active, stats.Banned, stats.Admins, stats.OrderAlerts, stats.AppealAlerts)
	return []core.Message{core.Markdown(text).WithKeyboard(adminKeyboard()...)}, nil
}

func (e *Engine) editInfoPrompt(ctx context.Context, id int64) ([]core.Message, error) {
	current, err := e.info.Load(ctx)
	if err != nil {
		return nil, err
	}

	e.sessions.Update(id, func(s *session.Session) {
		s.State = session.StateEditInfo
		s.Draft = ""
	})

	text := fmt.Sprintf(textEditInfoAsk, escapeMarkdown(current))
	return []core.Message{core.Markdown(text).WithKeyboard([]string{BackButton})}, nil
}

func (e *Engine) editInfoDraft(id int64, text string) []core.Message {
	text = strings.TrimSpace(text)
	if text == "" {
		e.sessions.SetState(id, session.StateEditInfo)
		return []core.Message{core.Markdown(fmt.Sprintf(textEditInfoAsk, "")).WithKeyboard([]string{BackButton})}
	}

	e.sessions.Update(id, func(s *session.Session) {
		s.State = session.StateEditInfoConfirm
		s.Draft = text
	})

	return []core.Message{
		core.Text(fmt.Sprintf(textEditInfoView, text)).WithKeyboard([]string{ConfirmSaveButton}, []string{BackButton}),
	}
}

func (e *Engine) editInfoSave(ctx context.Context, id int64, account *core.Account) ([]core.Message, error) {
	current, _ := e.sessions.Get(id)
	if current.Draft == "" {
		return e.editInfoPrompt(ctx, id)
	}

	if err := e.info.Save(ctx, current.Draft); err != nil {
		return nil, err
	}
	e.sessions.Update(id, func(s *session.Session) { s.Draft = "" })

	e.log.WithField("admin_id", id).Info("info text updated")

	view, err := e.infoView(ctx, id, account)
	if err != nil {
		return nil, err
	}
	return append([]core.Message{core.Text(textInfoSaved)}, view...), nil
}

func (e *Engine) toggleBan(ctx context.Context, admin *core.Account, raw string) ([]core.Message, error) {
	target, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return []core.Message{core.Text(textUserMissing).AsEdit()}, nil
	}

	if target == admin.TelegramID {
		return []core.Message{core.Text(textBanSelf).AsEdit()}, nil
	}

	account, err := e.accounts.Account(ctx, target)
	if errors.Is(err, core.ErrAccountNotFound) {
		return []core.Message{core.Text(textUserMissing).AsEdit()}, nil
	}
	if err != nil {
		return nil, err
	}

	banned := !account.Banned
	if err := e.accounts.SetBanned(ctx, target, banned); err != nil {
		return nil, err
	}

	log := e.log.WithFields(map[string]any{"admin_id": admin.TelegramID, "telegram_id": target})

	var result string
	if banned {
		e.sessions.Clear(target)
		result = fmt.Sprintf(textBanDone, account.DisplayName())
		e.dispatcher.Notify(ctx, target, core.Text(fmt.Sprintf(textBanNotice, e.support)))
		log.Info("account banned")
	} else {
		result = fmt.Sprintf(textUnbanDone, account.DisplayName())
		e.dispatcher.Notify(ctx, target, core.Text(textUnbanNotice))
		log.Info("account unbanned")
	}

	list, err := e.userList(ctx, admin.TelegramID)
	if err != nil {
		return nil, err
	}
	return append([]core.Message{core.Text(result).AsEdit()}, list...), nil
}

func (e *Engine) userCard(ctx context.Context, raw string) ([]core.Message, error) {
	target, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return []core.Message{core.Text(textUserMissing)}, nil
	}

	account, err := e.accounts.Account(ctx, target)
	if errors.Is(err, core.ErrAccountNotFound) {
		return []core.Message{core.Text(textUserMissing)}, nil
	}
	if err != nil {
		return nil, err
	}

	status := textUserActive
	if account.Banned {
		status = textUserBlocked
	}

	text := fmt.Sprintf(textUserCard,
		account.TelegramID,
		escapeMarkdown(account.DisplayName()),
		inlineCode(account.Login),
		account.Role,
		status,
		flagText(account.OrderAlerts),
		flagText(account.AppealAlerts),
	)
	return []core.Message{core.Markdown(text)}, nil
}
