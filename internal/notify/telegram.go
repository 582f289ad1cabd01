package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
)

const (
	defaultAPIBaseURL             = "https://api.telegram.org"
	responseBodyReadLimit   int64 = 1024
	defaultSenderTimeout          = 8 * time.Second
)

// Sender delivers one rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

type telegramSender struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
}

// SenderOption configures optional sender behavior.
type SenderOption func(*telegramSender)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) SenderOption {
	return func(s *telegramSender) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithBaseURL overrides the Telegram API base URL.
func WithBaseURL(baseURL string) SenderOption {
	return func(s *telegramSender) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			s.baseURL = trimmed
		}
	}
}

// NewTelegramSender builds a sender that posts messages through the Telegram
// bot API.
func NewTelegramSender(botToken string, opts ...SenderOption) (Sender, error) {
	trimmed := strings.TrimSpace(botToken)
	if trimmed == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	sender := &telegramSender{
		httpClient: &http.Client{Timeout: defaultSenderTimeout},
		baseURL:    defaultAPIBaseURL,
		botToken:   trimmed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sender)
		}
	}
	return sender, nil
}

func (s *telegramSender) Send(ctx context.Context, chatID, text string) error {
	if strings.TrimSpace(chatID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "chat id is required")
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal telegram payload")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(s.baseURL, "/"), s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute telegram request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"telegram send failed")
	}
	return nil
}
