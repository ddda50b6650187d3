// Package notify delivers best-effort "booking created" messages to the
// managers' Telegram chat. Delivery failures are logged and swallowed: a
// notification must never fail or roll back the booking it describes.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

type TelegramNotifier struct {
	client   *http.Client
	botToken string
	chatID   string
}

func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		botToken: botToken,
		chatID:   chatID,
	}
}

// Enabled reports whether the notifier is configured. Callers may wire a
// nil-safe interface instead of checking this.
func (t *TelegramNotifier) Enabled() bool {
	return t.botToken != "" && t.chatID != ""
}

func (t *TelegramNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, apartmentTitle string) error {
	if !t.Enabled() {
		return nil
	}

	text := fmt.Sprintf(
		"Новое бронирование\n%s\n%s → %s\nГостей: %d\nСумма: %d.%02d ₽\nТелефон: %s",
		apartmentTitle,
		b.Dates.CheckIn, b.Dates.CheckOut,
		b.GuestsCount,
		b.TotalPrice/100, b.TotalPrice%100,
		b.GuestPhone,
	)

	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("telegram notify failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("telegram notify failed: status=%d", resp.StatusCode)
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}
