// Package notification renders platform events and delivers them to accounts
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
)

const (
	// OrderDetailPrefix prefixes the callback data of the order detail button
	OrderDetailPrefix = "order_"

	broadcastHeader = "📢 Сообщение от администратора\n\n"
	detailsLabel    = "📋 Детали ордера"
)

// Report counts the outcome of a fan-out
type Report struct {
	Sent    int
	Failed  int
	Skipped int
}

// Dispatcher delivers event alerts, broadcasts and notices through a messenger
type Dispatcher struct {
	accounts  core.AccountStorage
	messenger core.Messenger
	log       logger.Logger
}

// NewDispatcher creates a dispatcher sending through messenger
func NewDispatcher(accounts core.AccountStorage, messenger core.Messenger, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		accounts:  accounts,
		messenger: messenger,
		log:       log,
	}
}

// Dispatch sends the alert for event to a single account. Banned accounts and
// accounts with the event kind's alerts switched off are rejected.
func (d *Dispatcher) Dispatch(ctx context.Context, account *core.Account, event core.Event) error {
	if account.Banned {
		return core.ErrAccountBanned
	}
	if !event.Kind.Valid() {
		return fmt.Errorf("dispatch to %d: %w", account.TelegramID, core.ErrUnknownEventKind)
	}
	if !account.Alerts(event.Kind) {
		return core.ErrAlertsDisabled
	}

	text, err := Format(event)
	if err != nil {
		return err
	}

	message := core.HTML(text)
	if id := event.OrderID.String(); id != "" {
		message = message.WithInline([]core.InlineButton{{Text: detailsLabel, Data: OrderDetailPrefix + id}})
	}

	if err := d.messenger.Send(ctx, account.TelegramID, message); err != nil {
		return fmt.Errorf("failed to send %s alert to %d: %w", event.Kind, account.TelegramID, err)
	}

	return nil
}

// DispatchAll sends event to every account. Rejected accounts are counted as
// skipped, delivery failures are logged and counted.
func (d *Dispatcher) DispatchAll(ctx context.Context, accounts []*core.Account, event core.Event) Report {
	var report Report
	for _, account := range accounts {
		err := d.Dispatch(ctx, account, event)
		switch {
		case err == nil:
			report.Sent++
		case isRejection(err):
			report.Skipped++
		default:
			report.Failed++
			d.log.WithError(err).WithField("telegram_id", account.TelegramID).Error("alert delivery failed")
		}
	}

	return report
}

// Broadcast sends an administrator message to every account that is not banned
func (d *Dispatcher) Broadcast(ctx context.Context, text string) (Report, error) {
	accounts, err := d.accounts.Accounts(ctx, core.WithBanned(false))
	if err != nil {
		return Report{}, fmt.Errorf("failed to list broadcast recipients: %w", err)
	}

	report := d.NotifyAll(ctx, accounts, core.Text(broadcastHeader+text))
	d.log.WithFields(map[string]any{
		"sent":   report.Sent,
		"failed": report.Failed,
	}).Info("broadcast finished")

	return report, nil
}

// NotifyAll sends message to every account that is not banned
func (d *Dispatcher) NotifyAll(ctx context.Context, accounts []*core.Account, message core.Message) Report {
	var report Report
	for _, account := range accounts {
		if account.Banned {
			report.Skipped++
			continue
		}

		if err := d.messenger.Send(ctx, account.TelegramID, message); err != nil {
			report.Failed++
			d.log.WithError(err).WithField("telegram_id", account.TelegramID).Warn("notice delivery failed")
			continue
		}
		report.Sent++
	}

	return report
}

// Notify sends message to one chat and only logs a failure
func (d *Dispatcher) Notify(ctx context.Context, chatID int64, message core.Message) {
	if err := d.messenger.Send(ctx, chatID, message); err != nil {
		d.log.WithError(err).WithField("telegram_id", chatID).Warn("notice delivery failed")
	}
}

func isRejection(err error) bool {
	return errors.Is(err, core.ErrAccountBanned) || errors.Is(err, core.ErrAlertsDisabled)
}
