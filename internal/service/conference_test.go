package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confbooker/internal/domain"
	"confbooker/internal/storage/memory"
)

func validConferenceInput() domain.RegisterConferenceInput {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return domain.RegisterConferenceInput{
		Name:      "GopherCon EU",
		Location:  "Berlin",
		Topics:    []string{"go", "cloud"},
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
		Capacity:  100,
	}
}

func TestConferenceService_Register(t *testing.T) {
	svc := NewConferenceService(memory.New())

	conf, err := svc.Register(context.Background(), validConferenceInput())

	require.NoError(t, err)
	assert.Equal(t, "GopherCon EU", conf.Name)
	assert.Equal(t, 100, conf.Capacity)
	assert.Equal(t, 100, conf.AvailableSlots, "all slots start free")
}

func TestConferenceService_Register_Duplicate(t *testing.T) {
	svc := NewConferenceService(memory.New())

	_, err := svc.Register(context.Background(), validConferenceInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validConferenceInput())

	assert.ErrorIs(t, err, domain.ErrDuplicateConference)
}

func TestConferenceService_Register_Validation(t *testing.T) {
	svc := NewConferenceService(memory.New())

	cases := []struct {
		name   string
		mutate func(*domain.RegisterConferenceInput)
	}{
		{"empty name", func(in *domain.RegisterConferenceInput) { in.Name = "" }},
		{"bad name", func(in *domain.RegisterConferenceInput) { in.Name = "Gopher@Con" }},
		{"empty location", func(in *domain.RegisterConferenceInput) { in.Location = "" }},
		{"start after end", func(in *domain.RegisterConferenceInput) {
			in.StartTime, in.EndTime = in.EndTime, in.StartTime
		}},
		{"start equals end", func(in *domain.RegisterConferenceInput) { in.EndTime = in.StartTime }},
		{"span over 12 hours", func(in *domain.RegisterConferenceInput) {
			in.EndTime = in.StartTime.Add(13 * time.Hour)
		}},
		{"zero capacity", func(in *domain.RegisterConferenceInput) { in.Capacity = 0 }},
		{"negative capacity", func(in *domain.RegisterConferenceInput) { in.Capacity = -5 }},
		{"bad topic", func(in *domain.RegisterConferenceInput) { in.Topics = []string{"go!"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validConferenceInput()
			tc.mutate(&input)
			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestConferenceService_GetDetails(t *testing.T) {
	store := memory.New()
	confSvc := NewConferenceService(store)

	input := validConferenceInput()
	input.Capacity = 1
	_, err := confSvc.Register(context.Background(), input)
	require.NoError(t, err)

	env := &allocEnv{store: store, clock: newFakeClock()}
	env.svc = NewAllocationService(store, nil, env.clock, newTestLogger(t))
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	_, err = env.svc.Book(context.Background(), "alice", input.Name)
	require.NoError(t, err)
	_, err = env.svc.Book(context.Background(), "bob", input.Name)
	require.NoError(t, err)

	details, err := confSvc.GetDetails(context.Background(), input.Name)

	require.NoError(t, err)
	assert.Equal(t, 0, details.Conference.AvailableSlots)
	assert.Equal(t, 1, details.ActiveBookings)
	assert.Equal(t, 1, details.WaitlistLength)
}

func TestConferenceService_GetDetails_NotFound(t *testing.T) {
	svc := NewConferenceService(memory.New())

	_, err := svc.GetDetails(context.Background(), "NoSuchCon")

	assert.ErrorIs(t, err, domain.ErrConferenceNotFound)
}
