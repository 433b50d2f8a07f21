package http

import (
	"log/slog"
	"os"

	"github.com/fieldops/worklog-backend-go/internal/handler/http/middleware"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	userHandler UserHandler,
	roleHandler RoleHandler,
	jobHandler JobHandler,
	workEntryHandler WorkEntryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worklog-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/my", companyHandler.GetMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", companyHandler.List)
					r.Post("/", companyHandler.Create)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Put("/{userID}", userHandler.Update)
				r.Put("/{userID}/settings", userHandler.UpdateSettings)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{userID}/overrides", roleHandler.PutOverride)
					r.Delete("/{userID}/overrides/{code}", roleHandler.DeleteOverride)
				})
			})

			// Admin only
			r.Route("/roles", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", roleHandler.List)
				r.Post("/", roleHandler.Create)
				r.Get("/{roleID}/grants", roleHandler.ListGrants)
				r.Put("/{roleID}/grants", roleHandler.ReplaceGrants)
			})

			r.Get("/permissions", roleHandler.ListPermissions)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobHandler.List)
				r.Post("/", jobHandler.Create)
				r.Put("/{jobID}", jobHandler.Update)
				r.Get("/{jobID}/wage-rates", jobHandler.ListWageRates)
			})

			r.Route("/wage-tiers", func(r chi.Router) {
				r.Get("/", jobHandler.ListTiers)
				r.Post("/", jobHandler.CreateTier)
			})

			r.Put("/wage-rates", jobHandler.SetWageRate)

			r.Route("/work-entries", func(r chi.Router) {
				r.Get("/", workEntryHandler.List)
				r.Post("/", workEntryHandler.Create)
				r.Put("/{entryID}", workEntryHandler.Update)
				r.Delete("/{entryID}", workEntryHandler.Delete)
			})
		})
	})
	return r
}
