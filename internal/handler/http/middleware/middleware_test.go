package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT(t *testing.T) jwt.Service {
	t.Helper()
	svc, err := jwt.NewJWTService("middleware-test-secret", "1h", "24h", false)
	require.NoError(t, err)
	return svc
}

// protected chains the verifier, AuthRequired and extra into a handler that
// echoes the principal's user id.
func protected(svc jwt.Service, extra ...func(http.Handler) http.Handler) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())
		_, _ = w.Write([]byte(p.UserID))
	})
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(h))
}

func call(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc := newJWT(t)
	employeeID := "emp-1"
	access, exp, err := svc.GenerateAccessToken(jwt.AccessClaims{
		UserID: "user-1", CompanyID: "company-1", Role: user.RoleStaff, EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	h := protected(svc)

	rec := call(h, access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(h, "").Code)

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(h, refresh).Code)

	svc.RevokeToken(access, exp)
	assert.Equal(t, http.StatusUnauthorized, call(h, access).Code)
}

func TestAuthRequired_PrincipalClaims(t *testing.T) {
	svc := newJWT(t)
	access, exp, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "user-1", CompanyID: "company-1", Role: user.RoleHR})
	require.NoError(t, err)

	var got Principal
	h := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFrom(r.Context())
	})))
	call(h, access)

	assert.Equal(t, "company-1", got.CompanyID)
	assert.Equal(t, user.RoleHR, got.Role)
	assert.Nil(t, got.EmployeeID)
	assert.Equal(t, access, got.Token)
	assert.Equal(t, exp, got.ExpiresAt)
}

func TestRequirePermission(t *testing.T) {
	svc := newJWT(t)
	staff, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "staff", CompanyID: "c", Role: user.RoleStaff})
	require.NoError(t, err)
	hr, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "hr", CompanyID: "c", Role: user.RoleHR})
	require.NoError(t, err)

	h := protected(svc, RequirePermission(user.PermissionAttendanceViewAll))
	assert.Equal(t, http.StatusForbidden, call(h, staff).Code)
	assert.Equal(t, http.StatusOK, call(h, hr).Code)
}

func TestRequireRole(t *testing.T) {
	svc := newJWT(t)
	accountant, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "acc", CompanyID: "c", Role: user.RoleAccountant})
	require.NoError(t, err)
	admin, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "admin", CompanyID: "c", Role: user.RoleAdmin})
	require.NoError(t, err)

	h := protected(svc, AdminOrHR)
	assert.Equal(t, http.StatusForbidden, call(h, accountant).Code)
	assert.Equal(t, http.StatusOK, call(h, admin).Code)
}

func TestRequireEmployeeAndCompany(t *testing.T) {
	svc := newJWT(t)
	employeeID := "emp-1"
	withProfile, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "u1", CompanyID: "c", Role: user.RoleStaff, EmployeeID: &employeeID})
	require.NoError(t, err)
	noProfile, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "u2", CompanyID: "c", Role: user.RoleAdmin})
	require.NoError(t, err)
	noCompany, _, err := svc.GenerateAccessToken(jwt.AccessClaims{UserID: "u3", Role: user.RoleAdmin})
	require.NoError(t, err)

	h := protected(svc, RequireCompany, RequireEmployee)
	assert.Equal(t, http.StatusOK, call(h, withProfile).Code)
	assert.Equal(t, http.StatusForbidden, call(h, noProfile).Code)
	assert.Equal(t, http.StatusUnauthorized, call(h, noCompany).Code)
}
