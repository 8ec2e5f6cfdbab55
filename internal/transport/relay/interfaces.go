package relay

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/service"
)

type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type Servicer interface {
	PendingEvents(ctx context.Context, limit uint) ([]domain.OutboxEvent, error)
	Complete(ctx context.Context, results []service.DeliveryResult) error
}

// Observer receives delivery outcomes, used for metrics.
type Observer interface {
	ObserveDelivery(eventType string, err error)
}
