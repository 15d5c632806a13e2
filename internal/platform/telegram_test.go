package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaktovottak/referralhub/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *TelegramClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewTelegramClient(config.TelegramConfig{
		APIBaseURL: srv.URL,
		BotToken:   "test-token",
		ChatID:     -1001,
	})
	require.NoError(t, err)
	return client
}

func TestCreateInviteLink(t *testing.T) {
	t.Run("returns the minted link", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/bottest-token/createChatInviteLink", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, float64(-1001), payload["chat_id"])
			assert.Equal(t, "invite by alice", payload["name"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":     true,
				"result": map[string]string{"invite_link": "https://t.me/+abc"},
			})
		})

		link, err := client.CreateInviteLink(context.Background(), 100, "alice")
		require.NoError(t, err)
		assert.Equal(t, "https://t.me/+abc", link)
	})

	t.Run("missing rights maps to permission denied", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":          false,
				"error_code":  400,
				"description": "Bad Request: not enough rights to manage chat invite links",
			})
		})

		_, err := client.CreateInviteLink(context.Background(), 100, "alice")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("other telegram errors are not permission denied", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":          false,
				"error_code":  429,
				"description": "Too Many Requests",
			})
		})

		_, err := client.CreateInviteLink(context.Background(), 100, "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestIsAdmin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getChatAdministrators", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"result": []map[string]interface{}{
				{"user": map[string]int64{"id": 1}},
				{"user": map[string]int64{"id": 7}},
			},
		})
	})

	isAdmin, err := client.IsAdmin(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = client.IsAdmin(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestIsTargetChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.True(t, client.IsTargetChat(-1001))
	assert.False(t, client.IsTargetChat(42))
}
