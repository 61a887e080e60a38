package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confbooker/internal/domain"
	"confbooker/internal/storage/memory"
)

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(memory.New())

	user, err := svc.Register(context.Background(), domain.RegisterUserInput{
		ID:     "alice42",
		Topics: []string{"go", "distributed systems"},
	})

	require.NoError(t, err)
	assert.Equal(t, "alice42", user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := svc.GetByID(context.Background(), "alice42")
	require.NoError(t, err)
	assert.Equal(t, user.Topics, got.Topics)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc := NewUserService(memory.New())

	_, err := svc.Register(context.Background(), domain.RegisterUserInput{ID: "alice"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterUserInput{ID: "alice"})

	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := NewUserService(memory.New())

	cases := []struct {
		name  string
		input domain.RegisterUserInput
	}{
		{"empty id", domain.RegisterUserInput{ID: ""}},
		{"non-alphanumeric id", domain.RegisterUserInput{ID: "alice!"}},
		{"id with spaces", domain.RegisterUserInput{ID: "alice smith"}},
		{"bad topic", domain.RegisterUserInput{ID: "alice", Topics: []string{"go;drop"}}},
		{"too many topics", domain.RegisterUserInput{ID: "alice", Topics: make([]string, maxUserTopics+1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := range tc.input.Topics {
				if tc.input.Topics[i] == "" {
					tc.input.Topics[i] = "go"
				}
			}
			_, err := svc.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(memory.New())

	_, err := svc.GetByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	svc := NewUserService(memory.New())

	for _, id := range []string{"carol", "alice", "bob"} {
		_, err := svc.Register(context.Background(), domain.RegisterUserInput{ID: id})
		require.NoError(t, err)
	}

	users, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].ID)
	assert.Equal(t, "bob", users[1].ID)
	assert.Equal(t, "carol", users[2].ID)
}
