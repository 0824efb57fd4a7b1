package config

import (
	"testing"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWith(t *testing.T, values map[string]any) (*Config, error) {
	t.Helper()

	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAuthEndpoint, cfg.Auth.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, []string{"ddenuxe"}, cfg.Admin.Handles)
	assert.Empty(t, cfg.Admin.IDs)
	assert.Equal(t, "@konvert_pm", cfg.Admin.SupportContact)
	assert.Equal(t, "users.db", cfg.Storage.DBPath)
	assert.Equal(t, "bot_info.db", cfg.Storage.InfoPath)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Validator.Interval)
	assert.Equal(t, "zerolog", cfg.Log.Driver)
	assert.False(t, cfg.Log.JSON)

	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadWith(t, map[string]any{
		"BOT_TOKEN":          "123:abc",
		"ADMIN_IDS":          " 42, 7,,42 ",
		"PRIVILEGED_HANDLES": "@boss, owner",
		"AUTH_TIMEOUT":       "3s",
		"VALIDATOR_INTERVAL": "1d",
		"LOG_DRIVER":         "Logrus",
		"LOG_JSON":           "true",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int64{42, 7}, cfg.Admin.IDs)
	assert.Equal(t, []string{"boss", "owner"}, cfg.Admin.Handles)
	assert.Equal(t, 3*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Validator.Interval)
	assert.Equal(t, "logrus", cfg.Log.Driver)
	assert.True(t, cfg.Log.JSON)

	policy := cfg.Policy()
	assert.Equal(t, core.RoleAdmin, policy.RoleFor(7, "someone"))
	assert.Equal(t, core.RoleAdmin, policy.RoleFor(1, "owner"))
	assert.Equal(t, core.RoleUser, policy.RoleFor(1, "someone"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"admin id", map[string]any{"ADMIN_IDS": "12,abc"}},
		{"timeout", map[string]any{"AUTH_TIMEOUT": "soon"}},
		{"interval", map[string]any{"VALIDATOR_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadWith(t, tt.values)
			assert.Error(t, err)
		})
	}
}
