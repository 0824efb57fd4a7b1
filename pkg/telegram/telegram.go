// Package telegram connects the conversation engine to the Telegram Bot API
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raykavin/orderalert/pkg/conversation"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Handler answers a resolved chat update
type Handler interface {
	Handle(ctx context.Context, update conversation.Update) ([]core.Message, error)
}

// Bot implements core.Messenger and feeds chat updates to a Handler
type Bot struct {
	ctx         context.Context
	client      *tb.Bot
	handler     Handler
	log         logger.Logger
	pollTimeout time.Duration
}

// Option is a function that configures a Bot
type Option func(bot *Bot)

// WithPollTimeout sets the long polling timeout
func WithPollTimeout(timeout time.Duration) Option {
	return func(bot *Bot) {
		bot.pollTimeout = timeout
	}
}

// New creates the bot client. Updates are only processed after Bind.
func New(token string, log logger.Logger, options ...Option) (*Bot, error) {
	bot := &Bot{
		ctx:         context.Background(),
		log:         log,
		pollTimeout: 10 * time.Second,
	}

	for _, option := range options {
		option(bot)
	}

	poller := &tb.LongPoller{Timeout: bot.pollTimeout}

	client, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: senderMiddleware(poller, log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot.client = client
	return bot, nil
}

// senderMiddleware drops updates that carry no sender
func senderMiddleware(poller *tb.LongPoller, log logger.Logger) *tb.MiddlewarePoller {
	return tb.NewMiddlewarePoller(poller, func(u *tb.Update) bool {
		switch {
		case u.Message != nil && u.Message.Sender == nil:
			log.Warn("dropping message without sender")
			return false
		case u.Callback != nil && u.Callback.Sender == nil:
			log.Warn("dropping callback without sender")
			return false
		}
		return true
	})
}

// Bind registers the command menu and routes every update to handler
func (b *Bot) Bind(handler Handler) error {
	b.handler = handler

	if err := setupCommands(b.client); err != nil {
		return fmt.Errorf("failed to set commands: %w", err)
	}

	for _, command := range conversation.Commands {
		b.client.Handle("/"+command.Name, b.onMessage)
	}
	b.client.Handle(tb.OnText, b.onMessage)
	b.client.Handle(tb.OnCallback, b.onCallback)

	return nil
}

func setupCommands(client *tb.Bot) error {
	commands := make([]tb.Command, 0, len(conversation.Commands))
	for _, command := range conversation.Commands {
		commands = append(commands, tb.Command{Text: command.Name, Description: command.Description})
	}
	return client.SetCommands(commands)
}

// Start begins polling in its own goroutine
func (b *Bot) Start(ctx context.Context) {
	b.ctx = ctx
	go b.client.Start()
	b.log.Info("telegram bot started")
}

// Stop ends polling
func (b *Bot) Stop() {
	b.client.Stop()
}

// Send delivers message to chatID
func (b *Bot) Send(ctx context.Context, chatID int64, message core.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := b.client.Send(&tb.User{ID: chatID}, message.Text, sendOptions(message)); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) onMessage(m *tb.Message) {
	update := messageUpdate(m)
	b.dispatch(update, nil)
}

func (b *Bot) onCallback(c *tb.Callback) {
	if err := b.client.Respond(c, &tb.CallbackResponse{}); err != nil {
		b.log.WithError(err).Warn("failed to answer callback")
	}

	b.dispatch(callbackUpdate(c), c.Message)
}

// dispatch runs the handler and delivers its replies. Replies marked as
// edits replace source when there is one.
func (b *Bot) dispatch(update conversation.Update, source *tb.Message) {
	log := b.log.WithField("telegram_id", update.Sender.ID)

	replies, err := b.handler.Handle(b.ctx, update)
	if err != nil {
		log.WithError(err).Error("update dropped")
		return
	}

	for _, reply := range replies {
		if reply.Edit && source != nil {
			if _, err := b.client.Edit(source, reply.Text, sendOptions(reply)); err != nil {
				log.WithError(err).Error("failed to edit message")
			}
			continue
		}

		if err := b.Send(b.ctx, update.Sender.ID, reply); err != nil {
			log.WithError(err).Error("failed to send reply")
		}
	}
}

func sender(user *tb.User) conversation.Sender {
	return conversation.Sender{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
	}
}

// messageUpdate resolves a text message into a command or plain text
func messageUpdate(m *tb.Message) conversation.Update {
	update := conversation.Update{Sender: sender(m.Sender)}

	if name, ok := commandName(m.Text); ok {
		update.Input = conversation.Command{Name: name, Args: strings.Fields(m.Payload)}
		return update
	}

	update.Input = conversation.TextMessage{Text: m.Text}
	return update
}

func callbackUpdate(c *tb.Callback) conversation.Update {
	return conversation.Update{
		Sender: sender(c.Sender),
		Input:  conversation.CallbackAction{Data: c.Data},
	}
}

// commandName extracts "start" from "/start@orderalert_bot payload"
func commandName(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	name := strings.TrimPrefix(strings.Fields(text)[0], "/")
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "", false
	}
	return name, true
}
