// Package nats publishes marketplace listing lifecycle events. Each event
// goes out on its own subject as a JSON envelope carrying the product
// payload and an emission timestamp, so downstream consumers (search
// indexers, moderation) can subscribe per lifecycle stage.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/campus-market/listing-service/internal/product/usecase"
)

const (
	subjectProductCreated = "marketplace.product.created"
	subjectProductDeleted = "marketplace.product.deleted"
)

type eventEnvelope struct {
	usecase.ProductEvent
	EmittedAt time.Time `json:"emittedAt"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("listing-service"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) ProductCreated(ctx context.Context, event usecase.ProductEvent) error {
	return p.publish(subjectProductCreated, event)
}

func (p *Publisher) ProductDeleted(ctx context.Context, event usecase.ProductEvent) error {
	return p.publish(subjectProductDeleted, event)
}

func (p *Publisher) publish(subject string, event usecase.ProductEvent) error {
	payload, err := json.Marshal(eventEnvelope{ProductEvent: event, EmittedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
