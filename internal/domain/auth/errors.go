package auth

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials  = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrAccountLocked       = apperror.New(apperror.KindForbidden, "account is locked, try again later")
	ErrAccountDisabled     = apperror.New(apperror.KindForbidden, "account is disabled")
	ErrInvalidToken        = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
	ErrRefreshTokenRevoked = apperror.New(apperror.KindUnauthorized, "refresh token has been revoked")
	ErrUserNotFound        = apperror.New(apperror.KindNotFound, "user not found")
)
