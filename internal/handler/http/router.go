package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LoginPerSecond float64
	LoginBurst     int
}

type Handlers struct {
	Auth     AuthHandler
	Vacation VacationHandler
	Holiday  HolidayHandler
	Event    EventHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.With(middleware.RateLimitByIP(rate.Limit(opts.LoginPerSecond), opts.LoginBurst)).
				Post("/login", h.Auth.Login)
		})

		// SSE authenticates with a short-lived token in the query string
		r.Get("/events", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", h.Auth.Me)
			r.Get("/events/token", h.Event.GetSSEToken)

			r.Route("/vacations", func(r chi.Router) {
				// Requesters
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionVacationCreate))
					r.Post("/preview", h.Vacation.Preview)
					r.Post("/", h.Vacation.Create)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionVacationViewOwn))
					r.Get("/my", h.Vacation.ListMy)
					r.Get("/my/stats", h.Vacation.MyStats)
					r.Get("/{id}", h.Vacation.Get)
				})

				// Reviewers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionVacationViewAll))
					r.Get("/", h.Vacation.List)
					r.Get("/stats/{requesterID}", h.Vacation.Stats)
					r.Post("/conflicts", h.Vacation.CheckConflicts)
					r.Get("/calendar", h.Vacation.Calendar)
					r.Get("/summary", h.Vacation.Summary)
				})
				r.With(middleware.RequirePermission(user.PermissionVacationReview)).
					Patch("/{id}", h.Vacation.Review)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
