package core

import "slices"

// AccountFilter defines a function type for filtering accounts
type AccountFilter func(account Account) bool

// Role represents the permission level of an account
type Role string

// Account roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a chat user linked to a trader login on the platform
type Account struct {
	ID           uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	TelegramID   int64  `json:"telegram_id" gorm:"column:telegram_id;uniqueIndex"`
	Handle       string `json:"tg_username" gorm:"column:tg_username"`
	Login        string `json:"platform_username" gorm:"column:platform_username;index"`
	OrderAlerts  bool   `json:"notifications_enabled" gorm:"column:notifications_enabled;default:false"`
	AppealAlerts bool   `json:"appeal_notifications_enabled" gorm:"column:appeal_notifications_enabled;default:false"`
	Role         Role   `json:"role" gorm:"column:role;default:user"`
	Banned       bool   `json:"banned" gorm:"column:banned;default:false"`
}

// TableName keeps the table name of the existing deployments
func (Account) TableName() string { return "users" }

// IsAdmin reports whether the account holds the admin role
func (a Account) IsAdmin() bool { return a.Role == RoleAdmin }

// Alerts reports whether notifications of the given kind are enabled
func (a Account) Alerts(kind EventKind) bool {
	switch kind {
	case EventOrder:
		return a.OrderAlerts
	case EventAppeal:
		return a.AppealAlerts
	default:
		return false
	}
}

// DisplayName returns the handle or a placeholder when it is empty
func (a Account) DisplayName() string {
	if a.Handle == "" {
		return "Неизвестно"
	}
	return a.Handle
}

// Stats aggregates account counters shown to administrators
type Stats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Banned       int64 `json:"banned"`
	Admins       int64 `json:"admin"`
	OrderAlerts  int64 `json:"order_notifications_enabled"`
	AppealAlerts int64 `json:"appeal_notifications_enabled"`
}

// RolePolicy decides which role a freshly upserted account gets
type RolePolicy struct {
	Handles []string
	IDs     []int64
}

// RoleFor returns admin for allowlisted handles or ids and user otherwise
func (p RolePolicy) RoleFor(id int64, handle string) Role {
	if p.Privileged(handle) || slices.Contains(p.IDs, id) {
		return RoleAdmin
	}
	return RoleUser
}

// Privileged reports whether the handle is on the allowlist
func (p RolePolicy) Privileged(handle string) bool {
	return handle != "" && slices.Contains(p.Handles, handle)
}

func WithBanned(banned bool) AccountFilter {
	return func(account Account) bool {
		return account.Banned == banned
	}
}

func WithRole(role Role) AccountFilter {
	return func(account Account) bool {
		return account.Role == role
	}
}

func WithAlerts(kind EventKind) AccountFilter {
	return func(account Account) bool {
		return account.Alerts(kind)
	}
}
