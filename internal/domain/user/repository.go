package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// RecordFailedLogin increments the failure counter. Reaching maxAttempts
	// sets the lockout to lockUntil and resets the counter.
	RecordFailedLogin(ctx context.Context, id string, maxAttempts int, lockUntil time.Time) (User, error)
	RecordSuccessfulLogin(ctx context.Context, id string, at time.Time) error
}
