package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
	"github.com/mmynk/fairly/pkg/api"
	"github.com/mmynk/fairly/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login exchanges credentials for a token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "email", req.Msg.Email)
		} else {
			s.logger.Error("Login failed", "email", req.Msg.Email, "error", err)
		}
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// GetCurrentUser returns the authenticated caller's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// GetUser looks up any account by ID for a signed-in caller.
func (s *AuthService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	if req.Msg.UserID == "" {
		return nil, toConnectError(ErrMissingID)
	}

	user, err := s.users.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("GetUser failed", "user_id", req.Msg.UserID, "error", err)
		}
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile renames the caller or moves their account to a new email.
// An email already registered to someone else is AlreadyExists.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(req.Msg.DisplayName)
	email := auth.NormalizeEmail(req.Msg.Email)
	if displayName == "" && email == "" {
		return nil, toConnectError(ErrEmptyProfileUpdate)
	}
	if displayName != "" {
		user.DisplayName = displayName
	}
	if email != "" {
		user.Email = email
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Warn("Profile update rejected", "user_id", user.ID, "error", err)
			return nil, toConnectError(auth.ErrEmailExists)
		}
		s.logger.Error("UpdateProfile failed", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

// caller loads the authenticated user's account.
func (s *AuthService) caller(ctx context.Context) (*models.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		// A valid token for a deleted account.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		s.logger.Error("Failed to load caller", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return user, nil
}
