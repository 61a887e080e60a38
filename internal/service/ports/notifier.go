package ports

import (
	"context"

	"confbooker/internal/domain"
)

// Notifier delivers the fire-and-forget side effects of the allocation
// engine. Implementations must never fail the calling operation.
type Notifier interface {
	NotifyPromoted(ctx context.Context, user *domain.User, conference *domain.Conference, booking *domain.Booking)
}
