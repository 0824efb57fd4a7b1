// Package config loads the bot settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Defaults used when the environment leaves a setting empty
const (
	DefaultAuthEndpoint      = "https://tradeacclogin.click/api/v1/telegram/trader/orderalert/AuthHandler.ashx"
	DefaultAuthTimeout       = "10s"
	DefaultPrivilegedHandles = "ddenuxe"
	DefaultSupportContact    = "@konvert_pm"
	DefaultDBPath            = "users.db"
	DefaultInfoPath          = "bot_info.db"
	DefaultHTTPAddr          = ":8000"
	DefaultValidatorInterval = "1h"
	DefaultLogLevel          = "info"
	DefaultLogDriver         = "zerolog"
)

var ErrMissingToken = errors.New("BOT_TOKEN is not set")

// Config holds the application configuration
type Config struct {
	Telegram  TelegramConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Storage   StorageConfig
	HTTP      HTTPConfig
	Validator ValidatorConfig
	Log       LogConfig
}

type TelegramConfig struct {
	Token string
}

// AuthConfig points at the platform credential endpoint
type AuthConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// AdminConfig decides who gets the admin role
type AdminConfig struct {
	IDs            []int64
	Handles        []string
	SupportContact string
}

type StorageConfig struct {
	DBPath   string
	InfoPath string
}

type HTTPConfig struct {
	Addr string
}

type ValidatorConfig struct {
	Interval time.Duration
}

type LogConfig struct {
	Level  string
	Driver string
	JSON   bool
}

// Policy returns the role policy built from the admin settings
func (c Config) Policy() core.RolePolicy {
	return core.RolePolicy{Handles: c.Admin.Handles, IDs: c.Admin.IDs}
}

// Validate checks the settings needed to run the bot
func (c Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("AUTH_ENDPOINT", DefaultAuthEndpoint)
	v.SetDefault("AUTH_TIMEOUT", DefaultAuthTimeout)
	v.SetDefault("PRIVILEGED_HANDLES", DefaultPrivilegedHandles)
	v.SetDefault("SUPPORT_CONTACT", DefaultSupportContact)
	v.SetDefault("DB_PATH", DefaultDBPath)
	v.SetDefault("INFO_PATH", DefaultInfoPath)
	v.SetDefault("HTTP_ADDR", DefaultHTTPAddr)
	v.SetDefault("VALIDATOR_INTERVAL", DefaultValidatorInterval)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("LOG_DRIVER", DefaultLogDriver)
	v.SetDefault("LOG_JSON", false)

	ids, err := parseIDs(v.GetString("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}

	timeout, err := parseDuration(v, "AUTH_TIMEOUT")
	if err != nil {
		return nil, err
	}

	interval, err := parseDuration(v, "VALIDATOR_INTERVAL")
	if err != nil {
		return nil, err
	}

	return &Config{
		Telegram: TelegramConfig{
			Token: v.GetString("BOT_TOKEN"),
		},
		Auth: AuthConfig{
			Endpoint: v.GetString("AUTH_ENDPOINT"),
			Timeout:  timeout,
		},
		Admin: AdminConfig{
			IDs:            ids,
			Handles:        splitList(v.GetString("PRIVILEGED_HANDLES")),
			SupportContact: v.GetString("SUPPORT_CONTACT"),
		},
		Storage: StorageConfig{
			DBPath:   v.GetString("DB_PATH"),
			InfoPath: v.GetString("INFO_PATH"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("HTTP_ADDR"),
		},
		Validator: ValidatorConfig{
			Interval: interval,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Driver: strings.ToLower(v.GetString("LOG_DRIVER")),
			JSON:   v.GetBool("LOG_JSON"),
		},
	}, nil
}

// splitList splits a comma separated value, dropping blanks and a leading @
func splitList(raw string) []string {
	items := lo.Map(strings.Split(raw, ","), func(item string, _ int) string {
		return strings.TrimPrefix(strings.TrimSpace(item), "@")
	})
	return lo.Compact(items)
}

func parseIDs(raw string) ([]int64, error) {
	ids := make([]int64, 0)
	for _, item := range splitList(raw) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", item, err)
		}
		ids = append(ids, id)
	}
	return lo.Uniq(ids), nil
}

// parseDuration accepts day and week units such as 1d or 2w12h
func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := str2duration.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return duration, nil
}
