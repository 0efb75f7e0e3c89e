package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	user.UserRepository
	auth.SessionRepository
	jwt.Service

	now func() time.Time
}

func NewAuthService(userRepository user.UserRepository, sessionRepository auth.SessionRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:    userRepository,
		SessionRepository: sessionRepository,
		Service:           jwtService,
		now:               time.Now,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	// Passwords are stored as entered
	if subtle.ConstantTimeCompare([]byte(userData.Password), []byte(loginReq.Password)) != 1 {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	now := a.now()
	session := auth.Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    userData.ID,
		StartedAt: now,
		ExpiresAt: now.Add(a.Service.AccessTokenLifetime()),
	}
	if err := a.SessionRepository.Create(ctx, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, session.ID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("session started", "user_id", userData.ID, "session_id", session.ID)

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		SessionID:            session.ID,
		User:                 user.NewUserResponse(userData),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := a.SessionRepository.Delete(ctx, sessionID); err != nil {
		return err
	}
	slog.Info("session ended", "session_id", sessionID)
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, sessionID string) (auth.Principal, error) {
	session, err := a.SessionRepository.GetByID(ctx, sessionID)
	if err != nil {
		return auth.Principal{}, err
	}

	if session.Expired(a.now()) {
		_ = a.SessionRepository.Delete(ctx, session.ID)
		return auth.Principal{}, auth.ErrSessionExpired
	}

	// Re-read the user so role or balance edits apply to live sessions
	current, err := a.UserRepository.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			_ = a.SessionRepository.Delete(ctx, session.ID)
			return auth.Principal{}, auth.ErrSessionNotFound
		}
		return auth.Principal{}, fmt.Errorf("failed to load session user: %w", err)
	}

	return auth.Principal{Session: session, User: current}, nil
}

// SweepExpiredSessions implements auth.AuthService.
func (a *AuthServiceImpl) SweepExpiredSessions(ctx context.Context) error {
	removed, err := a.SessionRepository.DeleteExpired(ctx, a.now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if removed > 0 {
		slog.Info("expired sessions removed", "count", removed)
	}
	return nil
}
