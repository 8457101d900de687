package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"waveo-api/internal/config"
	"waveo-api/internal/handler"
	"waveo-api/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Favorite *handler.FavoriteHandler
	Geocode  *handler.GeocodeHandler
	User     *handler.UserHandler
}

// New builds the route table. Paths mirror what the frontend already calls:
// auth routes at the root, data routes under /api.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Post("/refresh-token", h.Auth.Refresh)
	r.Post("/logout", h.Auth.Logout)
	r.With(authMiddleware.RequireAuth).Post("/change-password", h.Auth.ChangePassword)

	r.With(authMiddleware.RequireAuth).Get("/profile", h.Profile.Get)
	r.With(authMiddleware.RequireAuth).Post("/change-profile", h.Profile.Update)

	r.Route("/api", func(api chi.Router) {
		api.With(authMiddleware.RequireAuth).Put("/profile", h.Profile.Update)
		api.With(authMiddleware.RequireAuth).Get("/favorites", h.Favorite.List)
		api.With(authMiddleware.RequireAuth).Post("/favorites", h.Favorite.Add)
		api.With(authMiddleware.RequireAuth).Delete("/favorites", h.Favorite.Remove)
		api.Get("/geocode", h.Geocode.Lookup)
		api.With(authMiddleware.OptionalAuth).Get("/users/latest", h.User.Latest)
	})

	return r
}
