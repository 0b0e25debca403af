// Package notify delivers countdown-expiry notices over ntfy. When no topic
// is configured the service degrades to a noop, so notification delivery is
// never load-bearing.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/remind/pkg/task"
)

const userAgent = "Remind-Go/0.1.0"

// Service is the notification surface the expiry sweep talks to.
type Service interface {
	NotifyExpired(ctx context.Context, expired []*task.Task) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic is
// configured. Otherwise a noop implementation is returned.
func NewService(topic string) Service {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopService{}
	}
	if !strings.Contains(topic, "://") {
		topic = "https://ntfy.sh/" + topic
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Title renders the expiry notice title: the task count precedes the label
// once more than one countdown expires in the same sweep.
func Title(expired []*task.Task) string {
	if len(expired) == 1 {
		return "倒计时任务到期"
	}
	return fmt.Sprintf("%d个倒计时任务到期", len(expired))
}

// Body renders the expiry notice body: at most three task contents joined
// with 、, then an "and N tasks" tail for the rest.
func Body(expired []*task.Task) string {
	if len(expired) == 1 {
		return expired[0].Content
	}
	show := expired
	if len(show) > 3 {
		show = show[:3]
	}
	contents := make([]string, 0, len(show))
	for _, t := range show {
		contents = append(contents, t.Content)
	}
	body := strings.Join(contents, "、")
	if len(expired) > 3 {
		body += fmt.Sprintf("等%d个任务", len(expired))
	}
	return body
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyExpired(ctx context.Context, expired []*task.Task) error {
	if len(expired) == 0 {
		return nil
	}
	return n.send(ctx, Title(expired), Body(expired), "high")
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, "Remind - Test", "notification system test", "low")
}

func (n *ntfyService) send(ctx context.Context, title, message, priority string) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	req.Header.Set("Tags", "remind,expired")
	if priority != "" && priority != "default" {
		req.Header.Set("Priority", priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyExpired(context.Context, []*task.Task) error { return nil }
func (noopService) TestNotification(context.Context) error            { return nil }
