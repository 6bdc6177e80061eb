package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
)

// SessionJobs drops refresh tokens and access-token revocations that have
// outlived their expiry.
type SessionJobs struct {
	authService auth.AuthService
	jwtService  jwt.Service
	clock       clock.Clock
}

func NewSessionJobs(authService auth.AuthService, jwtService jwt.Service, clk clock.Clock) *SessionJobs {
	return &SessionJobs{
		authService: authService,
		jwtService:  jwtService,
		clock:       clk,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) error {
	if err := scheduler.AddJob("purge_expired_refresh_tokens", interval, j.PurgeRefreshTokens); err != nil {
		return err
	}
	return scheduler.AddJob("purge_revoked_access_tokens", interval, j.PurgeRevokedAccessTokens)
}

func (j *SessionJobs) PurgeRefreshTokens(ctx context.Context) error {
	removed, err := j.authService.PurgeExpiredSessions(ctx, j.clock.Now())
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("purged expired refresh tokens", "count", removed)
	}
	return nil
}

func (j *SessionJobs) PurgeRevokedAccessTokens(ctx context.Context) error {
	if removed := j.jwtService.PurgeRevoked(j.clock.Now()); removed > 0 {
		slog.Info("purged revoked access tokens", "count", removed)
	}
	return nil
}
