package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

const eventsPath = "/internal/notifications/bookings"

// Client клиент внешнего сервиса уведомлений (email/SMS)
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	log        Logger
	wg         sync.WaitGroup
}

// NewClient создает новый экземпляр клиента. Пустой baseURL отключает уведомления.
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send синхронно отправляет событие
func (c *Client) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eventsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// Notify отправляет событие в фоне со своим таймаутом.
// Ошибка отправки только логируется: бронирование уже сохранено и не откатывается.
func (c *Client) Notify(eventType EventType, b *domain.Booking) {
	if c.baseURL == "" || b == nil || b.SkipNotification {
		return
	}

	event := NewEvent(eventType, b, time.Now())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Send(ctx, event); err != nil {
			c.log.Error("Notify: failed to send %s for booking id=%d ticket=%s: %v",
				event.Type, event.BookingID, event.TicketNumber, err)
			return
		}
		c.log.Info("Notify: sent %s for booking id=%d", event.Type, event.BookingID)
	}()
}

// Wait дожидается фоновых отправок (graceful shutdown)
func (c *Client) Wait() {
	c.wg.Wait()
}
