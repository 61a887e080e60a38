package scheduler

import (
	"context"
	"time"

	"github.com/wb-go/wbf/logger"

	"confbooker/internal/domain"
)

type waitlistPromoter interface {
	PromoteEligible(ctx context.Context) ([]*domain.Booking, error)
}

// Scheduler periodically promotes waitlist entries whose confirmation
// window lapsed after the last cancellation freed a slot.
type Scheduler struct {
	allocationService waitlistPromoter
	interval          time.Duration
	logger            logger.Logger
}

func New(
	allocationService waitlistPromoter,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		allocationService: allocationService,
		interval:          interval,
		logger:            logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("promotion scheduler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("promotion scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	promoted, err := s.allocationService.PromoteEligible(ctx)
	if err != nil {
		s.logger.Error("promotion sweep failed",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, b := range promoted {
		s.logger.Info("waitlist entry promoted by sweep",
			logger.String("booking_id", b.ID),
			logger.String("user_id", b.UserID),
			logger.String("conference", b.ConferenceName),
		)
	}
}
