package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/samber/lo"
)

// Response statuses
const (
	StatusRunning          = "running"
	StatusSent             = "sent"
	StatusNoUser           = "no_user"
	StatusNotificationsOff = "notifications_off"
	StatusIgnored          = "ignored"
	StatusError            = "error"
)

const unfreezeNotice = "🔓 Ваш аккаунт был разблокирован. Используйте /unlock для продолжения"

type response struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// respondJSON always answers 200; the outcome travels in the status field
func respondJSON(w http.ResponseWriter, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, response{Status: StatusError, Detail: err.Error()})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, response{Status: StatusRunning})
}

// lookup resolves the accounts linked to login; an empty login matches none
func (s *Server) lookup(r *http.Request, login core.Field) ([]*core.Account, error) {
	if strings.TrimSpace(login.String()) == "" {
		return nil, nil
	}
	return s.accounts.AccountsByLogin(r.Context(), login.String())
}

func notBanned(account *core.Account, _ int) bool {
	return !account.Banned
}

func (s *Server) handleNewOrder(w http.ResponseWriter, r *http.Request) {
	var event core.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.log.WithError(err).Warn("malformed event payload")
		respondError(w, fmt.Errorf("invalid payload: %w", err))
		return
	}

	log := s.log.WithFields(map[string]any{
		"login":    event.Username.String(),
		"kind":     event.Kind,
		"order_id": event.OrderID.String(),
	})

	accounts, err := s.lookup(r, event.Username)
	if err != nil {
		log.WithError(err).Error("account lookup failed")
		respondError(w, err)
		return
	}

	recipients := lo.Filter(accounts, notBanned)
	if len(recipients) == 0 {
		log.Warn("no account for login")
		respondJSON(w, response{Status: StatusNoUser})
		return
	}

	if !event.Kind.Valid() {
		log.Warn("unknown event kind")
		respondError(w, fmt.Errorf("status %q: %w", event.Kind, core.ErrUnknownEventKind))
		return
	}

	subscribed := lo.Filter(recipients, func(account *core.Account, _ int) bool {
		return account.Alerts(event.Kind)
	})
	if len(subscribed) == 0 {
		log.Info("alerts disabled")
		respondJSON(w, response{Status: StatusNotificationsOff})
		return
	}

	report := s.dispatcher.DispatchAll(r.Context(), subscribed, event)
	if report.Sent == 0 {
		log.Error("alert not delivered to any account")
		respondJSON(w, response{Status: StatusError, Detail: fmt.Sprintf("delivery failed for %d accounts", report.Failed)})
		return
	}

	log.WithFields(map[string]any{"sent": report.Sent, "failed": report.Failed}).Info("alert sent")
	respondJSON(w, response{Status: StatusSent})
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	var status core.AuthStatus
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		s.log.WithError(err).Warn("malformed auth status payload")
		respondError(w, fmt.Errorf("invalid payload: %w", err))
		return
	}

	log := s.log.WithField("login", status.Username.String())

	freeze, ok := status.Freeze.Bool()
	if !ok {
		log.WithField("freeze", status.Freeze.String()).Warn("unreadable freeze flag")
		respondJSON(w, response{Status: StatusError, Detail: fmt.Sprintf("invalid freeze value %q", status.Freeze)})
		return
	}

	accounts, err := s.lookup(r, status.Username)
	if err != nil {
		log.WithError(err).Error("account lookup failed")
		respondError(w, err)
		return
	}

	recipients := lo.Filter(accounts, notBanned)
	if len(recipients) == 0 {
		log.Warn("no account for login")
		respondJSON(w, response{Status: StatusNoUser})
		return
	}

	if freeze {
		log.Info("account frozen, nothing to send")
		respondJSON(w, response{Status: StatusIgnored})
		return
	}

	report := s.dispatcher.NotifyAll(r.Context(), recipients, core.Text(unfreezeNotice))
	if report.Sent == 0 {
		respondJSON(w, response{Status: StatusError, Detail: fmt.Sprintf("delivery failed for %d accounts", report.Failed)})
		return
	}

	log.WithField("sent", report.Sent).Info("unfreeze notice sent")
	respondJSON(w, response{Status: StatusSent})
}
