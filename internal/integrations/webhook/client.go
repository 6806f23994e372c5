// Package webhook канал доставки сработавших уведомлений HTTP POST запросом на внешний адрес.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// HeaderNotificationID заголовок с идентификатором уведомления
const HeaderNotificationID = "X-Notification-Id"

// Client клиент для отправки уведомлений на webhook
type Client struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient создает новый экземпляр webhook клиента
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Deliver отправляет сработавшее уведомление.
// Любой ответ 2xx считается успешной доставкой.
func (c *Client) Deliver(ctx context.Context, request domain.Request) error {
	bodyBytes, err := json.Marshal(domain.NewFiredNotification(request, c.now()))
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderNotificationID, request.Identifier)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}
