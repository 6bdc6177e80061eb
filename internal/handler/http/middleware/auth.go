package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type principalKey struct{}

// Principal is the caller identity taken from a verified access token.
type Principal struct {
	UserID     string
	Email      string
	CompanyID  string
	EmployeeID *string
	Role       user.Role
	Token      string
	ExpiresAt  int64
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// AuthRequired must run after jwtauth.Verifier. It accepts only unrevoked
// access tokens and stores the Principal in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = jwtauth.TokenFromCookie(r)
			}
			if jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			p := Principal{Token: raw, ExpiresAt: token.Expiration().Unix()}
			p.UserID, _ = claims["user_id"].(string)
			p.Email, _ = claims["email"].(string)
			p.CompanyID, _ = claims["company_id"].(string)
			if role, ok := claims["role"].(string); ok {
				p.Role = user.Role(role)
			}
			if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
				p.EmployeeID = &employeeID
			}
			if p.UserID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		}
		return http.HandlerFunc(hfn)
	}
}
