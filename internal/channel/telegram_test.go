package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/icinga/icingadb/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *logging.Logger {
	return logging.NewLogger(zaptest.NewLogger(t).Sugar(), time.Hour)
}

func TestTelegram_Send(t *testing.T) {
	t.Run("successful-send", func(t *testing.T) {
		type sendMessageBody struct {
			ChatID    string `json:"chat_id"`
			Text      string `json:"text"`
			ParseMode string `json:"parse_mode"`
		}

		var requests []sendMessageBody
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/botTEST-TOKEN/sendMessage", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body sendMessageBody
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			requests = append(requests, body)

			_, _ = w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		ch := NewTelegram(server.URL, "TEST-TOKEN", "-100123", time.Second, testLogger(t))
		require.NoError(t, ch.Send(context.Background(), "Happy birthday, @ann!"))

		assert.Equal(t, []sendMessageBody{{
			ChatID:    "-100123",
			Text:      "Happy birthday, @ann!",
			ParseMode: "Markdown",
		}}, requests)
	})

	t.Run("error-status-carries-status-and-body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok": false, "description": "Unauthorized"}`))
		}))
		defer server.Close()

		ch := NewTelegram(server.URL, "BAD-TOKEN", "-100123", time.Second, testLogger(t))
		err := ch.Send(context.Background(), "text")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, `{"ok": false, "description": "Unauthorized"}`, apiErr.Body)
	})

	t.Run("any-status-below-400-is-success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		ch := NewTelegram(server.URL, "TEST-TOKEN", "-100123", time.Second, testLogger(t))
		assert.NoError(t, ch.Send(context.Background(), "text"))
	})

	t.Run("unreachable-server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		ch := NewTelegram(server.URL, "TEST-TOKEN", "-100123", time.Second, testLogger(t))
		assert.Error(t, ch.Send(context.Background(), "text"))
	})
}
