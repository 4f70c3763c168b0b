package beacon

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/redis"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("beacon")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, e *Event) error {
	s.log.Info("conversion event",
		zap.String("event", e.Name),
		zap.String("event_id", e.ID.String()),
		zap.String("session_id", e.SessionID),
		zap.String("transaction_id", e.TransactionID),
		zap.Int64("value", e.Value),
		zap.String("currency", e.Currency),
		zap.Any("attributes", e.Attributes),
	)
	return nil
}

// WebhookSink posts the event as JSON to the operator's own endpoint.
type WebhookSink struct {
	url    string
	token  string
	client *helper.HTTPClient
}

func NewWebhookSink(url, token string, client *helper.HTTPClient) *WebhookSink {
	return &WebhookSink{url: url, token: token, client: client}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Send(ctx context.Context, e *Event) error {
	res, err := s.client.HTTPRequest(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    s.url,
		Body:   e,
	}, &helper.HTTPRequestConfig{
		Ctx:     ctx,
		Bearer:  s.token,
		Headers: http.Header{"X-Event-Id": {e.ID.String()}},
	})
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("webhook returned status %d", res.StatusCode)
	}
	return nil
}

// Messenger is the part of *bot.Bot the Telegram sink needs.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type TelegramSink struct {
	bot    Messenger
	chatID int64
	brand  string
}

// NewTelegramBot builds a send-only client. getMe is skipped so startup does
// not depend on Telegram being reachable.
func NewTelegramBot(token string, opts ...bot.Option) (*bot.Bot, error) {
	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	return bot.New(token, opts...)
}

func NewTelegramSink(m Messenger, chatID int64, brand string) *TelegramSink {
	return &TelegramSink{bot: m, chatID: chatID, brand: brand}
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Send(ctx context.Context, e *Event) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    s.chatID,
		Text:      s.format(e),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

func (s *TelegramSink) format(e *Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> %s\n", html.EscapeString(s.brand), html.EscapeString(e.Name))
	if e.Value > 0 {
		fmt.Fprintf(&b, "Value: %d.%02d %s\n", e.Value/100, e.Value%100, html.EscapeString(e.Currency))
	}
	if e.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction: <code>%s</code>\n", html.EscapeString(e.TransactionID))
	}
	fmt.Fprintf(&b, "At: %s", e.OccurredAt.Format(time.RFC3339))
	return b.String()
}

// CounterSink keeps per-day event counters in Redis.
type CounterSink struct {
	rds redis.IRedis
	ttl time.Duration
}

func NewCounterSink(rds redis.IRedis) *CounterSink {
	return &CounterSink{rds: rds, ttl: 90 * 24 * time.Hour}
}

func (s *CounterSink) Name() string { return "counter" }

func (s *CounterSink) Send(_ context.Context, e *Event) error {
	_, err := s.rds.Incr(CounterKey(e.Name, e.OccurredAt), s.ttl)
	return err
}

func CounterKey(name string, at time.Time) string {
	return fmt.Sprintf("beacon:%s:%s", name, at.UTC().Format("20060102"))
}
