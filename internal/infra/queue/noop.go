package queue

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// NoopPublisher descarta eventos quando EVENTS_BACKEND=none.
type NoopPublisher struct{}

func (NoopPublisher) PublishStageChanged(context.Context, entity.StageChanged) error { return nil }
