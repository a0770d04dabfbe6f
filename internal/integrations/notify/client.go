package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса клиентских уведомлений (WhatsApp/SMS шлюз)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, notification BookingNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmed", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendBookingConfirmationWithGracefulDegradation отправляет подтверждение
// с graceful degradation: при недоступности сервиса уведомлений возвращается
// ErrServiceDegraded, бронирование при этом остаётся зафиксированным
func (c *Client) SendBookingConfirmationWithGracefulDegradation(ctx context.Context, notification BookingNotification) error {
	c.log.Info("Sending booking confirmation for reservation=%s, user=%d",
		notification.ReservationCode, notification.UserID)

	if err := c.SendBookingConfirmation(ctx, notification); err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Notify service unavailable, applying graceful degradation for reservation=%s: %v",
			notification.ReservationCode, err)
		return fmt.Errorf("%w: reservation=%s, error=%v", ErrServiceDegraded, notification.ReservationCode, err)
	}

	c.log.Info("Booking confirmation sent for reservation=%s", notification.ReservationCode)
	return nil
}
