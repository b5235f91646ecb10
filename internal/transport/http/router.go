package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"socialnet/internal/auth"
	"socialnet/internal/config"
	"socialnet/internal/handler"
	"socialnet/internal/httputil"
	"socialnet/internal/metrics"
	"socialnet/internal/transport/http/middleware"
)

// NewRouter assembles the full route tree with middleware.
func NewRouter(
	cfg *config.Config,
	tokens *auth.TokenManager,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.HTTPMetrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteSuccess(w, http.StatusOK, "OK", nil)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Get("/me", authHandler.Me)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Put("/password", authHandler.ChangePassword)
				r.Put("/avatar", authHandler.UpdateAvatar)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/user/{userId}", postHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuthMiddleware(tokens))
				r.Get("/{id}", postHandler.GetByID)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/post/{postId}", commentHandler.ListByPost)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Post("/post/{postId}", commentHandler.Create)
				r.Put("/{id}", commentHandler.Update)
				r.Delete("/{id}", commentHandler.Delete)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Get("/post/{postId}", likeHandler.ListPostLikes)
			r.Get("/user/{userId}", likeHandler.ListUserLikes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Post("/post/{postId}", likeHandler.Like)
				r.Delete("/post/{postId}", likeHandler.Unlike)
			})
		})
	})

	return r
}
