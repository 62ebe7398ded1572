package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

// OrderCreated is the message published after an order commits. Downstream
// consumers (reporting, CRM sync) read it; the webhook pipeline never waits
// on them.
type OrderCreated struct {
	StripeCheckoutID string    `json:"stripe_checkout_id"`
	CompanyName      string    `json:"company_name"`
	PackageID        string    `json:"package_id"`
	PackageName      string    `json:"package_name"`
	PaymentAmount    float64   `json:"payment_amount"`
	FilingSpeed      string    `json:"filing_speed"`
	CreatedAt        time.Time `json:"created_at"`
}

// Publisher emits order lifecycle events to Kafka. A nil Publisher is valid
// and drops every event, which is how deployments without a broker run.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	if p == nil {
		return nil
	}

	event := OrderCreated{
		StripeCheckoutID: order.StripeCheckoutID,
		CompanyName:      order.CompanyInfo.CompanyDesiredName,
		PackageID:        order.SelectedPackage.ID,
		PackageName:      order.SelectedPackage.Name,
		PaymentAmount:    order.PaymentAmount,
		FilingSpeed:      order.FilingSpeed,
		CreatedAt:        order.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.StripeCheckoutID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
