package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/session"
)

func (e *Engine) callback(ctx context.Context, sender Sender, data string) ([]core.Message, error) {
	if orderID, ok := strings.CutPrefix(data, OrderPrefix); ok {
		return []core.Message{core.Markdown(fmt.Sprintf(textOrderDetails, inlineCode(orderID))).AsEdit()}, nil
	}

	account, replies, err := e.active(ctx, sender)
	if account == nil {
		return replies, err
	}

	state := e.sessions.State(sender.ID)
	log := e.log.WithFields(map[string]any{"telegram_id": sender.ID, "state": state.String(), "data": data})

	switch {
	case data == CancelLogoutData:
		if state != session.StateLogoutConfirm {
			log.Warn("logout cancel outside of logout confirmation")
			return e.redisplay(ctx, sender.ID, account, state)
		}
		return e.cancelLogout(sender.ID, account), nil

	case strings.HasPrefix(data, BanUserPrefix):
		if !account.IsAdmin() {
			log.Warn("ban refused")
			return e.denied(sender.ID, account), nil
		}
		return e.toggleBan(ctx, account, strings.TrimPrefix(data, BanUserPrefix))

	case strings.HasPrefix(data, UserPrefix):
		if !account.IsAdmin() {
			log.Warn("user card refused")
			return e.denied(sender.ID, account), nil
		}
		return e.userCard(ctx, strings.TrimPrefix(data, UserPrefix))

	default:
		log.Debug("unknown callback")
		return e.mainMenu(sender.ID, account, textMainMenu), nil
	}
}
