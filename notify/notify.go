// Package notify sends best-effort trade alerts to a Discord webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MinInterval is the floor between outbound alerts. Bursts of failures must
// not flood the channel.
const MinInterval = 2 * time.Second

// Notifier delivers a human-readable message. Implementations are
// best-effort: they never return an error to the trading path.
type Notifier interface {
	Notify(message string)
}

// Nop discards all messages.
type Nop struct{}

func (Nop) Notify(string) {}

// Discord posts messages to a Discord webhook URL. One Discord value is
// shared by the strategy loop and the webhook handlers; the throttle state
// is guarded by a single check-and-set so near-simultaneous alerts cannot
// both pass.
type Discord struct {
	webhookURL string
	httpClient *http.Client
	log        *zap.Logger
	now        func() time.Time

	mu       sync.Mutex
	lastSent time.Time
}

func NewDiscord(webhookURL string, log *zap.Logger) *Discord {
	if log == nil {
		log = zap.NewNop()
	}
	return &Discord{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        log,
		now:        time.Now,
	}
}

// allow performs the atomic throttle check-and-set. The timestamp is only
// advanced when the alert is allowed through, so a burst collapses to its
// first message rather than silencing the channel entirely.
func (d *Discord) allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if !d.lastSent.IsZero() && now.Sub(d.lastSent) < MinInterval {
		return false
	}
	d.lastSent = now
	return true
}

func (d *Discord) Notify(message string) {
	if d.webhookURL == "" {
		return
	}
	if !d.allow() {
		d.log.Debug("alert throttled", zap.String("message", message))
		return
	}

	body, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		d.log.Error("marshal alert", zap.Error(err))
		return
	}

	resp, err := d.httpClient.Post(d.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		d.log.Error("send alert", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.log.Error("alert rejected", zap.Int("status", resp.StatusCode))
		return
	}
	d.log.Debug("alert sent", zap.Int("status", resp.StatusCode))
}
