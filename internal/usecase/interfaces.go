package usecase

import (
	"context"

	"github.com/xavierca1/ligue-outbound/internal/infra/queue"
)

type ActionPublisher interface {
	PublishAction(ctx context.Context, payload queue.ActionPayload) error
}
