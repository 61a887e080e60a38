package service

import (
	"context"
	"fmt"
	"time"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

type UserService struct {
	store ports.Store
}

func NewUserService(store ports.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        input.ID,
		Topics:    input.Topics,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}
