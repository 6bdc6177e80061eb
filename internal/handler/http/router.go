package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg config.HTTPConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		}
		if cfg.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Post("/validate", authHandler.ValidateToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequireCompany)

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", attendanceHandler.CheckIn)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", attendanceHandler.CheckOut)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", attendanceHandler.Today)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my-history", attendanceHandler.MyHistory)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my-summary", attendanceHandler.MySummary)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewTeam)).Get("/team", attendanceHandler.Team)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/by-date", attendanceHandler.ByDate)
					r.Get("/by-date/export", attendanceHandler.ExportByDate)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", employeeHandler.GetMe)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOrHR)
					r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", employeeHandler.List)
					r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/{id}", employeeHandler.Get)
					r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", employeeHandler.Create)
					r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Put("/{id}", employeeHandler.Update)
					r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Use(middleware.AdminOrHR)
				r.Get("/", masterHandler.ListBranches)
				r.Get("/{id}", masterHandler.GetBranch)
				r.Get("/{id}/departments", masterHandler.ListBranchDepartments)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Use(middleware.AdminOrHR)
				r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
				r.Get("/", masterHandler.ListDepartments)
				r.Post("/", masterHandler.CreateDepartment)
				r.Get("/{id}", masterHandler.GetDepartment)
				r.Put("/{id}", masterHandler.UpdateDepartment)
				r.Delete("/{id}", masterHandler.DeleteDepartment)
			})

			r.Route("/designations", func(r chi.Router) {
				r.Use(middleware.AdminOrHR)
				r.Use(middleware.RequirePermission(user.PermissionDesignationManage))
				r.Get("/", masterHandler.ListDesignations)
				r.Post("/", masterHandler.CreateDesignation)
				r.Get("/{id}", masterHandler.GetDesignation)
				r.Put("/{id}", masterHandler.UpdateDesignation)
				r.Delete("/{id}", masterHandler.DeleteDesignation)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})
	return r
}
