// Package conversation implements the chat menu state machine
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/raykavin/orderalert/pkg/notification"
	"github.com/raykavin/orderalert/pkg/session"
)

// DefaultSupportContact is named in ban notices
const DefaultSupportContact = "@konvert_pm"

// Engine turns chat updates into replies, reading and writing the session
// store and the account storage
type Engine struct {
	accounts   core.AccountStorage
	info       core.InfoStorage
	auth       core.Authenticator
	sessions   *session.Store
	dispatcher *notification.Dispatcher
	policy     core.RolePolicy
	support    string
	log        logger.Logger
}

// Option is a function that configures an Engine
type Option func(*Engine)

// WithSupportContact sets the contact named in ban notices
func WithSupportContact(contact string) Option {
	return func(e *Engine) {
		e.support = contact
	}
}

// WithRolePolicy sets the privileged handles allowed to bypass authentication
func WithRolePolicy(policy core.RolePolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

func New(
	accounts core.AccountStorage,
	info core.InfoStorage,
	authenticator core.Authenticator,
	sessions *session.Store,
	dispatcher *notification.Dispatcher,
	log logger.Logger,
	options ...Option,
) *Engine {
	engine := &Engine{
		accounts:   accounts,
		info:       info,
		auth:       authenticator,
		sessions:   sessions,
		dispatcher: dispatcher,
		support:    DefaultSupportContact,
		log:        log,
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// Handle processes one update and returns the replies for the sender. An
// error means a storage failure; the update should be dropped.
func (e *Engine) Handle(ctx context.Context, update Update) ([]core.Message, error) {
	switch input := update.Input.(type) {
	case Command:
		return e.command(ctx, update.Sender, input)
	case CallbackAction:
		return e.callback(ctx, update.Sender, input.Data)
	case TextMessage:
		return e.text(ctx, update.Sender, input.Text)
	default:
		return nil, fmt.Errorf("unsupported input %T", update.Input)
	}
}

func (e *Engine) text(ctx context.Context, sender Sender, text string) ([]core.Message, error) {
	state := e.sessions.State(sender.ID)
	log := e.log.WithFields(map[string]any{"telegram_id": sender.ID, "state": state.String()})

	switch state {
	case session.StateLogin:
		return e.submitLogin(sender, text), nil
	case session.StatePassword:
		return e.submitPassword(ctx, sender, text)
	}

	account, replies, err := e.active(ctx, sender)
	if account == nil {
		return replies, err
	}

	action := Resolve(state, text)
	log.WithField("action", int(action)).Debug("text input")

	if requiresAdmin(state, action) && !account.IsAdmin() {
		log.Warn("admin action refused")
		return e.denied(sender.ID, account), nil
	}

	return e.perform(ctx, sender, account, state, action, text)
}

func (e *Engine) perform(
	ctx context.Context,
	sender Sender,
	account *core.Account,
	state session.State,
	action Action,
	text string,
) ([]core.Message, error) {
	switch action {
	case ActionProfile:
		return e.profile(sender.ID, account), nil
	case ActionInfo:
		return e.infoView(ctx, sender.ID, account)
	case ActionEnableOrders:
		return e.toggle(ctx, sender.ID, account, core.EventOrder, true)
	case ActionDisableOrders:
		return e.toggle(ctx, sender.ID, account, core.EventOrder, false)
	case ActionEnableAppeals:
		return e.toggle(ctx, sender.ID, account, core.EventAppeal, true)
	case ActionDisableAppeals:
		return e.toggle(ctx, sender.ID, account, core.EventAppeal, false)
	case ActionLogout:
		return e.logoutPrompt(sender.ID, account), nil
	case ActionConfirmLogout:
		return e.confirmLogout(ctx, sender.ID, text)
	case ActionBack:
		return e.back(ctx, sender.ID, account, state)
	case ActionAdminPanel:
		return e.adminMenu(sender.ID), nil
	case ActionBroadcast:
		return e.broadcastPrompt(sender.ID), nil
	case ActionDraftBroadcast:
		return e.broadcastDraft(sender.ID, text), nil
	case ActionConfirmBroadcast:
		return e.broadcastSend(ctx, sender.ID)
	case ActionUserList:
		return e.userList(ctx, sender.ID)
	case ActionStats:
		return e.stats(ctx, sender.ID)
	case ActionEditInfo:
		return e.editInfoPrompt(ctx, sender.ID)
	case ActionDraftInfo:
		return e.editInfoDraft(sender.ID, text), nil
	case ActionConfirmInfo:
		return e.editInfoSave(ctx, sender.ID, account)
	default:
		return e.redisplay(ctx, sender.ID, account, state)
	}
}

// active loads the sender's account and checks the session is usable. When
// it is not, the account is nil and the replies explain why.
func (e *Engine) active(ctx context.Context, sender Sender) (*core.Account, []core.Message, error) {
	account, err := e.accounts.Account(ctx, sender.ID)
	if errors.Is(err, core.ErrAccountNotFound) {
		e.sessions.Clear(sender.ID)
		return nil, e.expired(), nil
	}
	if err != nil {
		return nil, nil, err
	}

	if replies := e.usable(sender.ID, account); replies != nil {
		return nil, replies, nil
	}

	return account, nil, nil
}

// usable returns the replies refusing a loaded account whose session is gone
// or which is banned, and nil when the session can be used
func (e *Engine) usable(id int64, account *core.Account) []core.Message {
	if _, ok := e.sessions.Get(id); !ok {
		return e.expired()
	}

	if account.Banned {
		e.sessions.Clear(id)
		return e.banned()
	}

	return nil
}

// redisplay shows the menu of the tracked state
func (e *Engine) redisplay(ctx context.Context, id int64, account *core.Account, state session.State) ([]core.Message, error) {
	switch state {
	case session.StateProfile:
		return e.profile(id, account), nil
	case session.StateInfo:
		return e.infoView(ctx, id, account)
	case session.StateLogoutConfirm:
		return e.logoutPrompt(id, account), nil
	case session.StateAdminMenu:
		return e.adminMenu(id), nil
	case session.StateBroadcast:
		return e.broadcastPrompt(id), nil
	case session.StateBroadcastConfirm:
		current, _ := e.sessions.Get(id)
		return e.broadcastDraft(id, current.Draft), nil
	case session.StateUserList:
		return e.userList(ctx, id)
	case session.StateEditInfo:
		return e.editInfoPrompt(ctx, id)
	case session.StateEditInfoConfirm:
		current, _ := e.sessions.Get(id)
		return e.editInfoDraft(id, current.Draft), nil
	default:
		return e.mainMenu(id, account, textMainMenu), nil
	}
}

func (e *Engine) back(ctx context.Context, id int64, account *core.Account, state session.State) ([]core.Message, error) {
	switch state {
	case session.StateBroadcast, session.StateBroadcastConfirm, session.StateUserList:
		return e.adminMenu(id), nil
	case session.StateEditInfo, session.StateEditInfoConfirm:
		return e.infoView(ctx, id, account)
	default:
		return e.mainMenu(id, account, textMainMenu), nil
	}
}

func (e *Engine) expired() []core.Message {
	return []core.Message{core.Markdown(textSessionExpired).WithoutKeyboard()}
}

func (e *Engine) banned() []core.Message {
	return []core.Message{core.Markdown(fmt.Sprintf(textBanned, escapeMarkdown(e.support))).WithoutKeyboard()}
}

func (e *Engine) denied(id int64, account *core.Account) []core.Message {
	if account == nil {
		return []core.Message{core.Text(textDenied)}
	}
	return append([]core.Message{core.Text(textDenied)}, e.mainMenu(id, account, textMainMenu)...)
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", `\`+"`",
	"[", `\[`,
)

// escapeMarkdown protects user supplied text inside legacy markdown messages
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// inlineCode makes text safe to put between backticks
func inlineCode(text string) string {
	return strings.ReplaceAll(text, "`", "'")
}
