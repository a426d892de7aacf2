package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IEventPublisher ships lifecycle facts to whoever notifies humans.
type IEventPublisher interface {
	Publish(ctx context.Context, event entities.JobEvent) error
}
