package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairly/pkg/api"
)

func TestRegister(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	resp, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "password123",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.Token)
	assert.Equal(t, "alice@example.com", resp.Msg.User.Email)

	tests := []struct {
		name     string
		req      *api.RegisterRequest
		wantCode connect.Code
	}{
		{"duplicate email", &api.RegisterRequest{Email: "alice@example.com", DisplayName: "Other", Password: "password123"}, connect.CodeAlreadyExists},
		{"weak password", &api.RegisterRequest{Email: "bob@example.com", DisplayName: "Bob", Password: "short"}, connect.CodeInvalidArgument},
		{"missing name", &api.RegisterRequest{Email: "carol@example.com", Password: "password123"}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.auth.Register(ctx, connect.NewRequest(tt.req))
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.register(t, "Alice")
	ctx := context.Background()

	resp, err := srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "password123"}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.User.ID)
	assert.NotEmpty(t, resp.Msg.Token)

	_, err = srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "nobody@example.com", Password: "password123"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestGetCurrentUser(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.register(t, "Alice")

	resp, err := srv.auth.GetCurrentUser(context.Background(), as(alice, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.User.ID)
	assert.Equal(t, "Alice", resp.Msg.User.DisplayName)

	_, err = srv.auth.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = srv.auth.GetCurrentUser(context.Background(), as(testUser{Token: "garbage"}, &api.GetCurrentUserRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestGetUser(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.register(t, "Alice")
	bob := srv.register(t, "Bob")
	ctx := context.Background()

	resp, err := srv.auth.GetUser(ctx, as(alice, &api.GetUserRequest{UserID: bob.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.Msg.User.DisplayName)
	assert.Equal(t, "bob@example.com", resp.Msg.User.Email)

	tests := []struct {
		name     string
		req      *connect.Request[api.GetUserRequest]
		wantCode connect.Code
	}{
		{"unknown user", as(alice, &api.GetUserRequest{UserID: "nonexistent-id"}), connect.CodeNotFound},
		{"missing id", as(alice, &api.GetUserRequest{}), connect.CodeInvalidArgument},
		{"unauthenticated", connect.NewRequest(&api.GetUserRequest{UserID: bob.ID}), connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.auth.GetUser(ctx, tt.req)
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.register(t, "Alice")
	srv.register(t, "Bob")
	ctx := context.Background()

	resp, err := srv.auth.UpdateProfile(ctx, as(alice, &api.UpdateProfileRequest{DisplayName: " Alicia "}))
	require.NoError(t, err)
	assert.Equal(t, "Alicia", resp.Msg.User.DisplayName)
	assert.Equal(t, "alice@example.com", resp.Msg.User.Email, "empty email is left unchanged")
	assert.GreaterOrEqual(t, resp.Msg.User.UpdatedAt, resp.Msg.User.CreatedAt)

	resp, err = srv.auth.UpdateProfile(ctx, as(alice, &api.UpdateProfileRequest{Email: "Alicia@Example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "alicia@example.com", resp.Msg.User.Email)
	assert.Equal(t, "Alicia", resp.Msg.User.DisplayName)

	current, err := srv.auth.GetCurrentUser(ctx, as(alice, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "alicia@example.com", current.Msg.User.Email)

	_, err = srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alicia@example.com", Password: "password123"}))
	require.NoError(t, err, "login works with the new email")
	_, err = srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "password123"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	tests := []struct {
		name     string
		req      *connect.Request[api.UpdateProfileRequest]
		wantCode connect.Code
	}{
		{"email taken by another account", as(alice, &api.UpdateProfileRequest{Email: "bob@example.com"}), connect.CodeAlreadyExists},
		{"nothing to change", as(alice, &api.UpdateProfileRequest{DisplayName: "  "}), connect.CodeInvalidArgument},
		{"unauthenticated", connect.NewRequest(&api.UpdateProfileRequest{DisplayName: "Mallory"}), connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.auth.UpdateProfile(ctx, tt.req)
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}
}

func TestUpdateProfile_RenameShowsInGroups(t *testing.T) {
	srv := setupTestServer(t)
	alice := srv.register(t, "Alice")
	groupID := srv.newGroup(t, "Flat", alice)

	_, err := srv.auth.UpdateProfile(context.Background(), as(alice, &api.UpdateProfileRequest{DisplayName: "Al"}))
	require.NoError(t, err)

	members, err := srv.groups.ListMembers(context.Background(), as(alice, &api.ListMembersRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, members.Msg.Members, 1)
	assert.Equal(t, "Al", members.Msg.Members[0].UserName)
}
