package core

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountBanned    = errors.New("account banned")
	ErrAlertsDisabled   = errors.New("notifications disabled")
	ErrUnknownEventKind = errors.New("unknown event kind")
	ErrAuthUnavailable  = errors.New("auth service unavailable")
)
