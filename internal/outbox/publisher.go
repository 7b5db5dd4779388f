// Package outbox publishes order-created events to Kafka. Orders are written
// with event_published=false; the poller scans for unpublished documents,
// publishes, then flips the flag with a conditional update. Delivery is
// at-least-once; consumers must dedupe on order id.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
	"github.com/segmentio/kafka-go"
)

const (
	orderEventsTopic = "order-created"
	pollBatchSize    = 100
)

// EventWriter is the slice of kafka.Writer the poller uses; swapped for a
// recorder in tests.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Publisher struct {
	repo   repository.OrderRepository
	writer EventWriter
	tick   time.Duration
}

func NewPublisher(repo repository.OrderRepository, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  orderEventsTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{repo: repo, writer: w, tick: time.Second}
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Publisher) Close() {
	if closer, ok := p.writer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close kafka writer", "error", err)
		}
	}
}

func (p *Publisher) publishPending(ctx context.Context) {
	orders, err := p.repo.ListUnpublished(ctx, pollBatchSize)
	if err != nil {
		slog.Error("failed to fetch unpublished orders", "error", err)
		return
	}

	for i := range orders {
		order := &orders[i]
		if errPub := p.publish(ctx, order); errPub != nil {
			slog.Error("failed to publish order event", "order_id", order.ID, "error", errPub)
			continue
		}
		if errMark := p.repo.MarkPublished(ctx, order.ID); errMark != nil {
			slog.Error("failed to mark order published", "order_id", order.ID, "error", errMark)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, order *domain.Order) error {
	event := OrderEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
}
