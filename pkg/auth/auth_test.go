package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler func(req request) (int, any)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.WriteHeader(status)
		if s, ok := body.(string); ok {
			_, _ = w.Write([]byte(s))
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Verify(t *testing.T) {
	server := newServer(t, func(req request) (int, any) {
		assert.Equal(t, "tg_trader", req.TgUsername)
		assert.Empty(t, req.Action)
		if req.Username == "Trader" && req.Password == "secret" {
			return http.StatusOK, map[string]any{"Success": true, "username": "trader"}
		}
		return http.StatusOK, map[string]any{"Success": false}
	})
	client := NewClient(server.URL, logger.Nop())

	result, err := client.Verify(context.Background(), "Trader", "secret", "tg_trader")
	require.NoError(t, err)
	require.True(t, result.OK)
	require.Equal(t, "trader", result.Login, "server confirmed login wins")

	result, err = client.Verify(context.Background(), "Trader", "wrong", "tg_trader")
	require.NoError(t, err)
	require.False(t, result.OK)
}

func TestClient_VerifyFallsBackToTypedLogin(t *testing.T) {
	server := newServer(t, func(request) (int, any) {
		return http.StatusOK, map[string]any{"Success": true}
	})

	result, err := NewClient(server.URL, logger.Nop()).Verify(context.Background(), "typed", "p", "h")
	require.NoError(t, err)
	require.Equal(t, "typed", result.Login)
}

func TestClient_VerifyNonSuccessStatus(t *testing.T) {
	server := newServer(t, func(request) (int, any) {
		return http.StatusInternalServerError, "oops"
	})

	result, err := NewClient(server.URL, logger.Nop()).Verify(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	require.False(t, result.OK)
}

func TestClient_VerifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, logger.Nop(), WithTimeout(20*time.Millisecond))
	_, err := client.Verify(context.Background(), "a", "b", "c")
	require.ErrorIs(t, err, core.ErrAuthUnavailable)
}

func TestClient_Validate(t *testing.T) {
	server := newServer(t, func(req request) (int, any) {
		assert.Equal(t, "validate", req.Action)
		assert.Empty(t, req.Password)
		switch req.Username {
		case "alive":
			return http.StatusOK, map[string]any{"Success": true}
		case "gone":
			return http.StatusOK, map[string]any{"Success": false}
		default:
			return http.StatusBadGateway, "bad gateway"
		}
	})
	client := NewClient(server.URL, logger.Nop())

	result, err := client.Validate(context.Background(), "alive", "h")
	require.NoError(t, err)
	require.True(t, result.OK)

	result, err = client.Validate(context.Background(), "gone", "h")
	require.NoError(t, err)
	require.False(t, result.OK)

	_, err = client.Validate(context.Background(), "flaky", "h")
	require.ErrorIs(t, err, core.ErrAuthUnavailable)
}
