// Package notify delivers order events over the Telegram Bot API: status
// updates to the customer's chat and dashboard lines to the branch channel.
// Delivery is best-effort; a failed send is logged and reported to the caller,
// which has already committed the state change and will not retry.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"oshxona/internal/core/ports"
)

const sendTimeout = 5 * time.Second

// TelegramNotifier implements ports.Notifier over the Telegram Bot API.
type TelegramNotifier struct {
	token   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token.
func NewTelegramNotifier(token string, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: sendTimeout},
		logger:  logger.With("component", "telegram_notifier"),
	}
}

// NewTelegramNotifierWithBaseURL creates a notifier pointed at a custom API
// host. Used to target a local Bot API server or a test double.
func NewTelegramNotifierWithBaseURL(token string, baseURL string, logger *slog.Logger) *TelegramNotifier {
	notifier := NewTelegramNotifier(token, logger)
	notifier.baseURL = baseURL
	return notifier
}

// NotifyCustomer delivers an event to the customer's chat.
func (n *TelegramNotifier) NotifyCustomer(ctx context.Context, chatID int64, event ports.Event) error {
	return n.send(ctx, chatID, customerText(event))
}

// NotifyBranchChannel delivers an event to the branch dashboard channel.
func (n *TelegramNotifier) NotifyBranchChannel(ctx context.Context, channelID int64, event ports.Event) error {
	return n.send(ctx, channelID, channelText(event))
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *TelegramNotifier) send(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := n.client.Do(request)
	if err != nil {
		n.logger.ErrorContext(ctx, "Telegram send failed", "chat_id", chatID, "error", err)
		return err
	}
	defer response.Body.Close()

	var result sendMessageResponse
	if err = json.NewDecoder(io.LimitReader(response.Body, 1<<16)).Decode(&result); err != nil {
		n.logger.ErrorContext(ctx, "Telegram response unreadable", "chat_id", chatID, "error", err)
		return err
	}
	if !result.OK {
		err = fmt.Errorf("telegram rejected the message: %s", result.Description)
		n.logger.ErrorContext(ctx, "Telegram send rejected",
			"chat_id", chatID, "status", response.StatusCode, "error", err)
		return err
	}

	return nil
}

func customerText(event ports.Event) string {
	return event.Message
}

func channelText(event ports.Event) string {
	return fmt.Sprintf("order %s → %s: %s", event.OrderID, event.Status, event.Message)
}
