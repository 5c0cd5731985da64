package router

import (
	"net/http"

	"craftpin/internal/cache"
	"craftpin/internal/config"
	"craftpin/internal/database"
	v1 "craftpin/internal/handlers/api/v1"
	"craftpin/internal/middleware"
	"craftpin/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// New assembles the HTTP router: global middleware, public reads with
// optional auth, and token-protected mutations.
func New(
	cfg *config.Config,
	svcs *services.Collection,
	db *database.Manager,
	cacheClient cache.Cache,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)

	auth := v1.NewAuthHandler(svcs.Auth)
	pins := v1.NewPinHandler(svcs.Pins)
	boards := v1.NewBoardHandler(svcs.Boards)
	comments := v1.NewCommentHandler(svcs.Comments)
	users := v1.NewUserHandler(svcs.Users, svcs.Pins, svcs.Boards)
	badges := v1.NewBadgeHandler(svcs.Badges)
	uploads := v1.NewUploadHandler(svcs.Files)
	health := v1.NewHealthHandler(db, cacheClient)

	r.Get("/health", health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		// Public reads; a valid token personalizes the response.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.Auth.JWTSecret))

			r.Get("/pins", pins.List)
			r.Get("/pins/{id}", pins.Get)
			r.Get("/pins/{id}/comments", comments.List)
			r.Get("/boards/{id}", boards.Get)
			r.Get("/users/{id}", users.Get)
			r.Get("/users/{id}/pins", users.ListPins)
			r.Get("/users/{id}/boards", users.ListBoards)
			r.Get("/users/{id}/badges", badges.ListForUser)
			r.Get("/badges", badges.List)
		})

		// Mutations require a token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth.JWTSecret))

			r.Post("/pins", pins.Create)
			r.Delete("/pins/{id}", pins.Delete)
			r.Post("/pins/{id}/like", pins.Like)
			r.Delete("/pins/{id}/like", pins.Unlike)
			r.Post("/pins/{id}/comments", comments.Create)
			r.Delete("/comments/{id}", comments.Delete)

			r.Post("/boards", boards.Create)
			r.Delete("/boards/{id}", boards.Delete)
			r.Post("/boards/{id}/pins", boards.SavePin)
			r.Delete("/boards/{id}/pins/{pinID}", boards.UnsavePin)

			r.Post("/users/{id}/follow", users.Follow)
			r.Delete("/users/{id}/follow", users.Unfollow)

			r.Post("/uploads", uploads.UploadImage)
		})
	})

	return r
}
