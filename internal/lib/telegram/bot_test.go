package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBot_SendText(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"hello"}}`))
	}))
	defer srv.Close()

	bot, err := New("test-token", srv.URL, time.Second)
	require.NoError(t, err)

	err = bot.SendText(context.Background(), 42, "hello")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", gotBody["chat_id"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestBot_SendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	bot, err := New("test-token", srv.URL, time.Second)
	require.NoError(t, err)

	err = bot.SendText(context.Background(), 1, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.SendText")
	assert.ErrorIs(t, err, ErrUndeliverable)
}

func TestBot_SendText_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		undeliverable bool
	}{
		{
			name:          "blocked by user",
			status:        http.StatusForbidden,
			body:          `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`,
			undeliverable: true,
		},
		{
			name:          "user deactivated",
			status:        http.StatusForbidden,
			body:          `{"ok":false,"error_code":403,"description":"Forbidden: user is deactivated"}`,
			undeliverable: true,
		},
		{
			name:   "server error is temporary",
			status: http.StatusBadGateway,
			body:   `{"ok":false,"error_code":502,"description":"Bad Gateway"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			bot, err := New("test-token", srv.URL, time.Second)
			require.NoError(t, err)

			err = bot.SendText(context.Background(), 1, "hello")
			require.Error(t, err)
			assert.Equal(t, tt.undeliverable, errors.Is(err, ErrUndeliverable))
		})
	}
}

func TestBot_SendText_CanceledContext(t *testing.T) {
	bot, err := New("test-token", "http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = bot.SendText(ctx, 1, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
