package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
)

// APIError is returned when the Telegram Bot API answers with a client or
// server error. Body carries the response body verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Telegram sends messages to a fixed chat via the Telegram Bot API.
type Telegram struct {
	BaseURL string
	Token   string
	ChatID  string

	client *http.Client
	logger *logging.Logger
}

// NewTelegram returns a Telegram channel posting to the sendMessage endpoint
// of the Bot API at baseURL, authenticated with token. The timeout bounds each
// request.
func NewTelegram(baseURL, token, chatID string, timeout time.Duration, logger *logging.Logger) *Telegram {
	return &Telegram{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		ChatID:  chatID,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Send issues exactly one sendMessage request for the given text. Any response
// status >= 400 surfaces as *APIError; there is no retry.
func (ch *Telegram) Send(ctx context.Context, text string) error {
	message := struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}{
		ChatID:    ch.ChatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", ch.BaseURL, ch.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := ch.client.Do(req)
	if err != nil {
		return fmt.Errorf("error while sending http request to the telegram API: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	ch.logger.Debugw("Successfully sent a telegram message", zap.String("chat_id", ch.ChatID))

	return nil
}
