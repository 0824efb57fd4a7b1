package core

import "context"

// Messenger delivers messages to a chat user
type Messenger interface {
	Send(ctx context.Context, chatID int64, message Message) error
}

// AuthResult is the outcome of a credential check on the platform
type AuthResult struct {
	OK    bool
	Login string
}

type Authenticator interface {
	// Verify checks a login and password typed by the user
	Verify(ctx context.Context, login, password, handle string) (AuthResult, error)
	// Validate re-confirms a stored login without a password
	Validate(ctx context.Context, login, handle string) (AuthResult, error)
}

// AccountStorage defines the persistence operations on accounts
type AccountStorage interface {
	// UpsertAccount creates or replaces the account for the chat user
	UpsertAccount(ctx context.Context, id int64, handle, login string) (*Account, error)

	// Account returns the account or ErrAccountNotFound
	Account(ctx context.Context, id int64) (*Account, error)

	// AccountsByLogin returns every account linked to the platform login
	AccountsByLogin(ctx context.Context, login string) ([]*Account, error)

	// Accounts lists accounts matching all filters
	Accounts(ctx context.Context, filters ...AccountFilter) ([]*Account, error)

	SetBanned(ctx context.Context, id int64, banned bool) error
	SetRole(ctx context.Context, id int64, role Role) error
	SetAlerts(ctx context.Context, id int64, kind EventKind, enabled bool) error
	SetLogin(ctx context.Context, id int64, login string) error
	DeleteAccount(ctx context.Context, id int64) error

	Stats(ctx context.Context) (Stats, error)
}

// InfoStorage keeps the information text shown to users
type InfoStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}
