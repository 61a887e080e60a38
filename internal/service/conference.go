package service

import (
	"context"
	"fmt"
	"time"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

type ConferenceService struct {
	store ports.Store
}

func NewConferenceService(store ports.Store) *ConferenceService {
	return &ConferenceService{store: store}
}

func (s *ConferenceService) Register(ctx context.Context, input domain.RegisterConferenceInput) (*domain.Conference, error) {
	if err := validateConferenceInput(input); err != nil {
		return nil, err
	}

	conference := &domain.Conference{
		Name:           input.Name,
		Location:       input.Location,
		Topics:         input.Topics,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Capacity:       input.Capacity,
		AvailableSlots: input.Capacity,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateConference(ctx, conference); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	return conference, nil
}

func (s *ConferenceService) GetByName(ctx context.Context, name string) (*domain.Conference, error) {
	return s.store.GetConference(ctx, name)
}

// GetDetails reads slot count and waitlist length under the conference
// lock so the two are consistent with each other.
func (s *ConferenceService) GetDetails(ctx context.Context, name string) (*domain.ConferenceDetails, error) {
	var details domain.ConferenceDetails
	err := s.store.UpdateConference(ctx, name, func(tx ports.ConferenceTx) error {
		details.Conference = *tx.Conference()
		qlen, err := tx.WaitlistLen()
		if err != nil {
			return err
		}
		details.WaitlistLength = qlen
		return nil
	})
	if err != nil {
		return nil, err
	}

	active, err := s.store.CountActiveBookings(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	details.ActiveBookings = active

	return &details, nil
}

func (s *ConferenceService) List(ctx context.Context) ([]*domain.Conference, error) {
	return s.store.ListConferences(ctx)
}
