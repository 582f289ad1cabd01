package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSenderPostsSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	sender, err := NewTelegramSender("bot-token-123", WithBaseURL(server.URL))
	require.NoError(t, err)

	err = sender.Send(context.Background(), "chat-42", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/botbot-token-123/sendMessage", gotPath)
	assert.Equal(t, "chat-42", gotBody["chat_id"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestTelegramSenderRejectsEmptyToken(t *testing.T) {
	_, err := NewTelegramSender("   ")
	assert.Error(t, err)
}

func TestTelegramSenderFailsOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	sender, err := NewTelegramSender("bot-token-123", WithBaseURL(server.URL))
	require.NoError(t, err)

	err = sender.Send(context.Background(), "chat-42", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram send failed")
}

func TestTelegramSenderRequiresChatID(t *testing.T) {
	sender, err := NewTelegramSender("bot-token-123")
	require.NoError(t, err)

	err = sender.Send(context.Background(), "  ", "hello")
	assert.Error(t, err)
}
