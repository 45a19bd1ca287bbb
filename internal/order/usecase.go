package order

import (
	"context"
	"time"

	"github.com/fekuna/perfume-order-service/internal/notification"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResult, error)
	RecordFailure(ctx context.Context, failure *dto.FailureRecord) error
}

// Notifier delivers order emails. Delivery is best-effort; the report says what happened.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, n *dto.OrderNotification) notification.Report
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event *dto.OrderPlacedEvent) error
}

// Locker guards against the same order being submitted twice in a short window.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
