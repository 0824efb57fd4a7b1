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

// Command names understood by the engine
const (
	CommandStart      = "start"
	CommandCancel     = "cancel"
	CommandAdmin      = "admin"
	CommandUnlock     = "unlock"
	CommandInfoEdit   = "infoedit"
	CommandAddUser    = "adduser"
	CommandDeleteUser = "deleteuser"
	CommandMakeAdmin  = "makeadmin"
	CommandListUsers  = "listusers"
	CommandAdminHelp  = "adminhelp"
)

// Commands lists every command with its menu description
var Commands = []struct {
	Name        string
	Description string
}{
	{CommandStart, "Начать работу с ботом"},
	{CommandCancel, "Отменить текущую операцию"},
	{CommandAdmin, "Открыть админ-панель"},
	{CommandUnlock, "Продолжить после разблокировки"},
	{CommandInfoEdit, "Изменить информационный блок"},
	{CommandAddUser, "Добавить пользователя"},
	{CommandDeleteUser, "Удалить пользователя"},
	{CommandMakeAdmin, "Повысить до администратора"},
	{CommandListUsers, "Список пользователей"},
	{CommandAdminHelp, "Команды администратора"},
}

func (e *Engine) command(ctx context.Context, sender Sender, cmd Command) ([]core.Message, error) {
	e.log.WithFields(map[string]any{"telegram_id": sender.ID, "command": cmd.Name}).Debug("command")

	switch strings.ToLower(cmd.Name) {
	case CommandStart:
		return e.start(ctx, sender)
	case CommandCancel:
		return e.cancel(ctx, sender)
	case CommandAdmin:
		return e.openAdmin(ctx, sender)
	case CommandUnlock:
		return e.unlock(sender), nil
	case CommandInfoEdit:
		return e.infoEdit(ctx, sender)
	case CommandAddUser:
		return e.withAdmin(ctx, sender, func(admin *core.Account) ([]core.Message, error) {
			return e.addUser(ctx, admin, cmd.Args)
		})
	case CommandDeleteUser:
		return e.withAdmin(ctx, sender, func(admin *core.Account) ([]core.Message, error) {
			return e.deleteUser(ctx, admin, cmd.Args)
		})
	case CommandMakeAdmin:
		return e.withAdmin(ctx, sender, func(admin *core.Account) ([]core.Message, error) {
			return e.makeAdmin(ctx, admin, cmd.Args)
		})
	case CommandListUsers:
		return e.withAdmin(ctx, sender, func(*core.Account) ([]core.Message, error) {
			return e.listUsers(ctx)
		})
	case CommandAdminHelp:
		return e.withAdmin(ctx, sender, func(*core.Account) ([]core.Message, error) {
			return []core.Message{core.Markdown(textAdminHelp)}, nil
		})
	default:
		return e.text(ctx, sender, "/"+cmd.Name)
	}
}

// withAdmin runs fn when the sender has a usable session on an admin account.
// Users without an account get a bare refusal, other non admins go back to
// the main menu.
func (e *Engine) withAdmin(ctx context.Context, sender Sender, fn func(admin *core.Account) ([]core.Message, error)) ([]core.Message, error) {
	log := e.log.WithField("telegram_id", sender.ID)

	account, err := e.accounts.Account(ctx, sender.ID)
	if errors.Is(err, core.ErrAccountNotFound) {
		log.Warn("admin command refused")
		return e.denied(sender.ID, nil), nil
	}
	if err != nil {
		return nil, err
	}

	if replies := e.usable(sender.ID, account); replies != nil {
		return replies, nil
	}

	if !account.IsAdmin() {
		log.Warn("admin command refused")
		return e.denied(sender.ID, account), nil
	}

	return fn(account)
}

func (e *Engine) cancel(ctx context.Context, sender Sender) ([]core.Message, error) {
	canceled := core.Text(textCanceled)

	account, err := e.accounts.Account(ctx, sender.ID)
	if errors.Is(err, core.ErrAccountNotFound) {
		e.sessions.Clear(sender.ID)
		return []core.Message{canceled}, nil
	}
	if err != nil {
		return nil, err
	}

	if replies := e.usable(sender.ID, account); replies != nil {
		return append([]core.Message{canceled}, replies...), nil
	}

	e.sessions.Update(sender.ID, func(s *session.Session) {
		s.Draft = ""
		s.LogoutLogin = ""
	})

	if account.IsAdmin() {
		return append([]core.Message{canceled}, e.adminMenu(sender.ID)...), nil
	}
	return append([]core.Message{canceled}, e.mainMenu(sender.ID, account, textMainMenu)...), nil
}

// openAdmin shows the admin panel. Privileged handles skip authentication
// and the session check; everyone else needs an active admin session.
func (e *Engine) openAdmin(ctx context.Context, sender Sender) ([]core.Message, error) {
	if !e.policy.Privileged(sender.Username) {
		return e.withAdmin(ctx, sender, func(*core.Account) ([]core.Message, error) {
			return e.adminMenu(sender.ID), nil
		})
	}

	account, err := e.accounts.Account(ctx, sender.ID)
	if err != nil && !errors.Is(err, core.ErrAccountNotFound) {
		return nil, err
	}

	if account == nil {
		e.log.WithFields(map[string]any{
			"telegram_id": sender.ID,
			"handle":      sender.Username,
		}).Warn("privileged handle opened admin panel without authentication")

		if account, err = e.accounts.UpsertAccount(ctx, sender.ID, sender.Username, ""); err != nil {
			return nil, err
		}
	}
	if !account.IsAdmin() {
		if err := e.accounts.SetRole(ctx, sender.ID, core.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if account.Banned {
		e.sessions.Clear(sender.ID)
		return e.banned(), nil
	}
	return e.adminMenu(sender.ID), nil
}

func (e *Engine) infoEdit(ctx context.Context, sender Sender) ([]core.Message, error) {
	return e.withAdmin(ctx, sender, func(*core.Account) ([]core.Message, error) {
		return e.editInfoPrompt(ctx, sender.ID)
	})
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil
}

func (e *Engine) addUser(ctx context.Context, admin *core.Account, args []string) ([]core.Message, error) {
	if len(args) < 3 {
		return []core.Message{core.Markdown(textAddUsage)}, nil
	}

	id, ok := parseID(args[0])
	if !ok {
		return []core.Message{core.Markdown(textNotNumber)}, nil
	}

	_, err := e.accounts.Account(ctx, id)
	switch {
	case err == nil:
		return []core.Message{core.Text(fmt.Sprintf(textAddExists, id))}, nil
	case !errors.Is(err, core.ErrAccountNotFound):
		return nil, err
	}

	handle, login := args[1], args[2]
	if _, err := e.accounts.UpsertAccount(ctx, id, handle, login); err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{
		"admin_id":    admin.TelegramID,
		"telegram_id": id,
		"handle":      handle,
		"login":       login,
	}).Info("account added")

	return []core.Message{core.Markdown(fmt.Sprintf(textAdded, id, escapeMarkdown(handle), escapeMarkdown(login)))}, nil
}

func (e *Engine) deleteUser(ctx context.Context, admin *core.Account, args []string) ([]core.Message, error) {
	if len(args) < 1 {
		return []core.Message{core.Markdown(textDeleteUsage)}, nil
	}

	id, ok := parseID(args[0])
	if !ok {
		return []core.Message{core.Markdown(textNotNumber)}, nil
	}

	_, err := e.accounts.Account(ctx, id)
	if errors.Is(err, core.ErrAccountNotFound) {
		return []core.Message{core.Text(fmt.Sprintf(textNotInDB, id))}, nil
	}
	if err != nil {
		return nil, err
	}

	if id == admin.TelegramID {
		return []core.Message{core.Text(textDeleteSelf)}, nil
	}

	if err := e.accounts.DeleteAccount(ctx, id); err != nil {
		return nil, err
	}
	e.sessions.Clear(id)

	e.log.WithFields(map[string]any{"admin_id": admin.TelegramID, "telegram_id": id}).Info("account deleted")
	return []core.Message{core.Markdown(fmt.Sprintf(textDeleted, id))}, nil
}

func (e *Engine) makeAdmin(ctx context.Context, admin *core.Account, args []string) ([]core.Message, error) {
	if len(args) < 1 {
		return []core.Message{core.Markdown(textPromoteUsage)}, nil
	}

	id, ok := parseID(args[0])
	if !ok {
		return []core.Message{core.Markdown(textNotNumber)}, nil
	}

	account, err := e.accounts.Account(ctx, id)
	if errors.Is(err, core.ErrAccountNotFound) {
		return []core.Message{core.Text(fmt.Sprintf(textNotInDB, id))}, nil
	}
	if err != nil {
		return nil, err
	}

	if account.IsAdmin() {
		return []core.Message{core.Text(fmt.Sprintf(textAlreadyAdmin, id))}, nil
	}

	if err := e.accounts.SetRole(ctx, id, core.RoleAdmin); err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{"admin_id": admin.TelegramID, "telegram_id": id}).Info("account promoted")
	return []core.Message{core.Markdown(fmt.Sprintf(textPromoted, id))}, nil
}

func (e *Engine) listUsers(ctx context.Context) ([]core.Message, error) {
	accounts, err := e.accounts.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return []core.Message{core.Markdown(textListEmpty)}, nil
	}

	table := strings.ReplaceAll(AccountTable(accounts), "```", "'''")
	return []core.Message{core.Markdown(fmt.Sprintf(textListHeader, table))}, nil
}
