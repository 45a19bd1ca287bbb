package event

import (
	"context"
	"encoding/json"

	"github.com/fekuna/perfume-order-service/internal/order/dto"
)

type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

// Publisher emits order lifecycle events keyed by order number.
type Publisher struct {
	producer Producer
}

func NewPublisher(producer Producer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, e *dto.OrderPlacedEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, []byte(e.Payload.OrderNumber), data)
}
