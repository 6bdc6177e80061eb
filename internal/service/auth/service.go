package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx            database.Transactor
	users         user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	jwt           jwt.Service
	clock         clock.Clock
	cfg           config.AuthConfig
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	clk clock.Clock,
	cfg config.AuthConfig,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:            tx,
		users:         userRepository,
		refreshTokens: refreshTokenRepository,
		jwt:           jwtService,
		clock:         clk,
		cfg:           cfg,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	now := a.clock.Now()

	userData, err := a.users.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountDisabled
	}
	if userData.IsLocked(now) {
		return auth.TokenResponse{}, auth.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, a.failLogin(ctx, userData.ID, now)
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := a.users.RecordSuccessfulLogin(txCtx, userData.ID, now); err != nil {
			return fmt.Errorf("failed to record login: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// failLogin counts a bad password. The attempt that reaches the threshold
// already reports the lockout.
func (a *AuthServiceImpl) failLogin(ctx context.Context, userID string, now time.Time) error {
	updated, err := a.users.RecordFailedLogin(ctx, userID, a.cfg.MaxFailedLogins, now.Add(a.cfg.LockoutDuration))
	if err != nil {
		return fmt.Errorf("failed to record failed login: %w", err)
	}
	if updated.IsLocked(now) {
		slog.Warn("account locked after repeated failed logins", "user_id", userID)
		return auth.ErrAccountLocked
	}
	return auth.ErrInvalidCredentials
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		tokenResponse auth.TokenResponse
		err           error
	)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(jwt.AccessClaims{
		UserID:     userData.ID,
		Email:      userData.Email,
		EmployeeID: userData.EmployeeID,
		CompanyID:  userData.CompanyID,
		Role:       userData.Role,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.refreshTokens.Create(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	tokenResponse.User = toUserResponse(userData)
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. The presented token is revoked
// and replaced; a token can be rotated only once.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userID, err := a.jwt.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.refreshTokens.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountDisabled
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		revoked, err := a.refreshTokens.Revoke(txCtx, req.RefreshToken)
		if err != nil {
			return err
		}
		if !revoked {
			return auth.ErrRefreshTokenRevoked
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.AccessToken != "" {
		a.jwt.RevokeToken(req.AccessToken, req.AccessTokenExpiresAt)
	}
	if req.RefreshToken == "" {
		return nil
	}
	if _, err := a.refreshTokens.Revoke(ctx, req.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.UserResponse, error) {
	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.UserResponse{}, auth.ErrUserNotFound
		}
		return auth.UserResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toUserResponse(userData), nil
}

// PurgeExpiredSessions implements auth.AuthService.
func (a *AuthServiceImpl) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	removed, err := a.refreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		CompanyID:  u.CompanyID,
		EmployeeID: u.EmployeeID,
		FullName:   u.FullName,
	}
}
