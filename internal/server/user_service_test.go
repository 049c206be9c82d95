package server

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/types"
)

func setupTestUserService(t *testing.T) (*UserService, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewUserService(store, config.PasswordConfig{BcryptCost: config.MinBcryptCost}), store
}

func registerTestUser(t *testing.T, svc *UserService, email string) *types.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name: "John Doe", Email: email, Password: "password123", Phone: "555-0100",
	})
	require.NoError(t, err)
	return user
}

// racingStore never sees an existing email up front, so duplicates only surface on insert.
type racingStore struct {
	*mockStore
}

func (racingStore) CheckEmailExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestUserService_Register(t *testing.T) {
	t.Run("defaults to seeker", func(t *testing.T) {
		svc, store := setupTestUserService(t)

		user := registerTestUser(t, svc, "john@example.com")

		assert.Equal(t, types.RoleSeeker, user.Role)
		assert.Equal(t, "555-0100", user.Phone)
		assert.True(t, user.PasswordSet)

		stored, err := store.GetUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "password123", stored.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := setupTestUserService(t)
		registerTestUser(t, svc, "john@example.com")

		_, err := svc.Register(context.Background(), &types.CreateUserRequest{
			Name: "Other", Email: "john@example.com", Password: "password123",
		})

		var dup *ErrEmailAlreadyExists
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "john@example.com", dup.Email)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		svc, _ := setupTestUserService(t)

		_, err := svc.Register(context.Background(), &types.CreateUserRequest{
			Name: "Root", Email: "root@example.com", Password: "password123", Role: types.RoleAdmin,
		})

		var ve *ErrValidation
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := setupTestUserService(t)

		_, err := svc.Register(context.Background(), &types.CreateUserRequest{
			Name: "Kim", Email: "kim@example.com", Password: "password123", Role: "owner",
		})

		var ve *ErrValidation
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("concurrent registration of the same email", func(t *testing.T) {
		store := newMockStore()
		svc := NewUserService(racingStore{store}, config.PasswordConfig{BcryptCost: config.MinBcryptCost})
		registerTestUser(t, svc, "john@example.com")

		_, err := svc.Register(context.Background(), &types.CreateUserRequest{
			Name: "Other", Email: "JOHN@example.com", Password: "password123",
		})

		var dup *ErrEmailAlreadyExists
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 409, HTTPStatus(err))
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, store := setupTestUserService(t)
		store.failWith = errors.New("connection reset")

		_, err := svc.Register(context.Background(), &types.CreateUserRequest{
			Name: "John", Email: "john@example.com", Password: "password123",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 500, HTTPStatus(err))
	})
}

func TestUserService_Login(t *testing.T) {
	svc, store := setupTestUserService(t)
	registered := registerTestUser(t, svc, "john@example.com")

	// A user created without a password, e.g. by an import
	_, err := store.CreateUser(context.Background(), "Imported", "imported@example.com", "", types.RoleSeeker, "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "john@example.com", password: "password123"},
		{name: "wrong password", email: "john@example.com", password: "password124", wantErr: true},
		{name: "unknown email", email: "jane@example.com", password: "password123", wantErr: true},
		{name: "no password set", email: "imported@example.com", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), &types.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				var invalid *ErrInvalidCredentials
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	svc, _ := setupTestUserService(t)
	registered := registerTestUser(t, svc, "john@example.com")

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", user.Name)

	_, err = svc.GetUser(context.Background(), uuid.New())
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, _ := setupTestUserService(t)
	user := registerTestUser(t, svc, "john@example.com")
	ctx := context.Background()

	err := svc.UpdatePassword(ctx, user.ID, "not-my-password", "newpassword123")
	var mismatch *ErrPasswordMismatch
	require.ErrorAs(t, err, &mismatch)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "password123", "newpassword123"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "john@example.com", Password: "password123"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "john@example.com", Password: "newpassword123"})
	assert.NoError(t, err)

	err = svc.UpdatePassword(ctx, uuid.New(), "password123", "newpassword123")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
