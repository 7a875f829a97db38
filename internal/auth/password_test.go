package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
)

// memoryUsers is an in-memory storage.UserStore.
type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*models.User{}}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrAlreadyExists)
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUsers) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := map[string]*models.User{}
	for _, id := range ids {
		if u, err := m.GetUserByID(ctx, id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memoryUsers) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if other, ok := m.byEmail[user.Email]; ok && other.ID != user.ID {
		return storage.ErrAlreadyExists
	}
	for email, u := range m.byEmail {
		if u.ID == user.ID {
			delete(m.byEmail, email)
			m.byEmail[user.Email] = user
			return nil
		}
	}
	return storage.ErrNotFound
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers()).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	tests := []struct {
		name     string
		register func() error
		wantErr  error
	}{
		{
			name: "duplicate email",
			register: func() error {
				_, err := a.Register(ctx, "alice@example.com", "Alice 2", "another-password")
				return err
			},
			wantErr: ErrEmailExists,
		},
		{
			name: "weak password",
			register: func() error {
				_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
				return err
			},
			wantErr: ErrWeakPassword,
		},
		{
			name: "missing display name",
			register: func() error {
				_, err := a.Register(ctx, "bob@example.com", " ", "long-enough")
				return err
			},
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.register(), tt.wantErr)
		})
	}

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "ALICE@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = a.Authenticate(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "nobody@example.com", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
