package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SQLStorage implements core.AccountStorage using a SQL database via GORM
type SQLStorage struct {
	db     *gorm.DB
	policy core.RolePolicy
}

// Config holds the configuration for SQL database connections
type Config struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	Policy          core.RolePolicy
	Log             logger.Logger
}

// DefaultConfig returns a default configuration for SQL connections
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
	}
}

// NewFromSQLite opens (and migrates) the SQLite database at dbPath
func NewFromSQLite(dbPath string, config Config) (*SQLStorage, error) {
	return newFromSQL(sqlite.Open(dbPath), config)
}

func newFromSQL(dialect gorm.Dialector, config Config) (*SQLStorage, error) {
	opts := &gorm.Config{Logger: gormlogger.Discard}
	if config.Log != nil {
		opts.Logger = gormlogger.New(config.Log, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialect, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err = db.AutoMigrate(&core.Account{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db, policy: config.Policy}, nil
}

// UpsertAccount replaces the account row for id. Flags and the ban mark are
// reset, the role comes from the configured policy.
func (s *SQLStorage) UpsertAccount(ctx context.Context, id int64, handle, login string) (*core.Account, error) {
	account := &core.Account{
		TelegramID: id,
		Handle:     handle,
		Login:      login,
		Role:       s.policy.RoleFor(id, handle),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"tg_username":                  handle,
			"platform_username":            login,
			"notifications_enabled":        false,
			"appeal_notifications_enabled": false,
			"role":                         account.Role,
			"banned":                       false,
		}),
	}).Create(account)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert account %d: %w", id, result.Error)
	}

	return s.Account(ctx, id)
}

// Account returns the account for the chat user id
func (s *SQLStorage) Account(ctx context.Context, id int64) (*core.Account, error) {
	var account core.Account
	result := s.db.WithContext(ctx).Where("telegram_id = ?", id).First(&account)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, core.ErrAccountNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch account %d: %w", id, result.Error)
	}

	return &account, nil
}

// AccountsByLogin returns every account linked to the platform login
func (s *SQLStorage) AccountsByLogin(ctx context.Context, login string) ([]*core.Account, error) {
	var accounts []*core.Account
	result := s.db.WithContext(ctx).Where("platform_username = ?", login).Order("id").Find(&accounts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch accounts for login %q: %w", login, result.Error)
	}

	return accounts, nil
}

// Accounts lists accounts and applies the filters in memory
func (s *SQLStorage) Accounts(ctx context.Context, filters ...core.AccountFilter) ([]*core.Account, error) {
	var accounts []*core.Account
	result := s.db.WithContext(ctx).Order("id").Find(&accounts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", result.Error)
	}

	return lo.Filter(accounts, func(account *core.Account, _ int) bool {
		for _, filter := range filters {
			if !filter(*account) {
				return false
			}
		}
		return true
	}), nil
}

func (s *SQLStorage) SetBanned(ctx context.Context, id int64, banned bool) error {
	return s.update(ctx, id, "banned", banned)
}

func (s *SQLStorage) SetRole(ctx context.Context, id int64, role core.Role) error {
	return s.update(ctx, id, "role", role)
}

func (s *SQLStorage) SetLogin(ctx context.Context, id int64, login string) error {
	return s.update(ctx, id, "platform_username", login)
}

// SetAlerts switches the notification flag matching kind
func (s *SQLStorage) SetAlerts(ctx context.Context, id int64, kind core.EventKind, enabled bool) error {
	switch kind {
	case core.EventOrder:
		return s.update(ctx, id, "notifications_enabled", enabled)
	case core.EventAppeal:
		return s.update(ctx, id, "appeal_notifications_enabled", enabled)
	default:
		return fmt.Errorf("failed to set alerts for %d: %w", id, core.ErrUnknownEventKind)
	}
}

// DeleteAccount removes the account row; deleting a missing row is not an error
func (s *SQLStorage) DeleteAccount(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("telegram_id = ?", id).Delete(&core.Account{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, result.Error)
	}
	return nil
}

// Stats counts accounts by status, role and enabled flags
func (s *SQLStorage) Stats(ctx context.Context) (core.Stats, error) {
	var stats core.Stats

	counters := []struct {
		target *int64
		query  string
		args   []any
	}{
		{&stats.Total, "", nil},
		{&stats.Active, "banned = ?", []any{false}},
		{&stats.Banned, "banned = ?", []any{true}},
		{&stats.Admins, "role = ?", []any{core.RoleAdmin}},
		{&stats.OrderAlerts, "notifications_enabled = ?", []any{true}},
		{&stats.AppealAlerts, "appeal_notifications_enabled = ?", []any{true}},
	}

	for _, counter := range counters {
		tx := s.db.WithContext(ctx).Model(&core.Account{})
		if counter.query != "" {
			tx = tx.Where(counter.query, counter.args...)
		}
		if err := tx.Count(counter.target).Error; err != nil {
			return core.Stats{}, fmt.Errorf("failed to count accounts: %w", err)
		}
	}

	return stats, nil
}

// Close closes the database connection
func (s *SQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}

func (s *SQLStorage) update(ctx context.Context, id int64, column string, value any) error {
	result := s.db.WithContext(ctx).Model(&core.Account{}).Where("telegram_id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s for %d: %w", column, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}
