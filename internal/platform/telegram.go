package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kaktovottak/referralhub/internal/config"
)

// TelegramClient implements LinkFactory, AdminChecker and ChatGate against
// the Telegram Bot API.
type TelegramClient struct {
	baseURL    string
	token      string
	chatID     int64
	httpClient *http.Client
}

func NewTelegramClient(cfg config.TelegramConfig) (*TelegramClient, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot_token is required")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat_id is required")
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramClient{
		baseURL:    baseURL,
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type telegramResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

func (c *TelegramClient) call(ctx context.Context, method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var tr telegramResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !tr.OK {
		// 400 "not enough rights" / 403 both mean the bot lacks admin rights.
		if tr.ErrorCode == http.StatusBadRequest || tr.ErrorCode == http.StatusForbidden {
			return fmt.Errorf("%s: %s: %w", method, tr.Description, ErrPermissionDenied)
		}
		return fmt.Errorf("%s: telegram error %d: %s", method, tr.ErrorCode, tr.Description)
	}
	if result != nil {
		if err := json.Unmarshal(tr.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// CreateInviteLink mints a durable personal invite link named after its owner.
func (c *TelegramClient) CreateInviteLink(ctx context.Context, userID int64, displayName string) (string, error) {
	payload := map[string]interface{}{
		"chat_id": c.chatID,
		"name":    fmt.Sprintf("invite by %s", displayName),
	}
	var result struct {
		InviteLink string `json:"invite_link"`
	}
	if err := c.call(ctx, "createChatInviteLink", payload, &result); err != nil {
		return "", err
	}
	return result.InviteLink, nil
}

// IsAdmin checks the target chat's administrator list for the user.
func (c *TelegramClient) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	payload := map[string]interface{}{"chat_id": c.chatID}
	var admins []struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := c.call(ctx, "getChatAdministrators", payload, &admins); err != nil {
		return false, err
	}
	for _, a := range admins {
		if a.User.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// IsTargetChat reports whether chatID is the configured community chat.
func (c *TelegramClient) IsTargetChat(chatID int64) bool {
	return chatID == c.chatID
}
