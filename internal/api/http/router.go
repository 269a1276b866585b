package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/materials-service/internal/api/http/handlers"
	"github.com/spec-kit/materials-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything the app serves is mounted
// under /auth, matching the client it was built for.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/search", cfg.Catalog.Search)
	authGroup.Post("/advice", cfg.Catalog.ProsAndCons)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/verify", cfg.Users.Verify)
	protected.Get("/profile", cfg.Profile.Get)
	protected.Put("/profile", cfg.Profile.Update)
	protected.Post("/wishlist/add", cfg.Profile.WishlistAdd)
	protected.Delete("/wishlist/remove/:materialId", cfg.Profile.WishlistRemove)
	protected.Post("/materials", cfg.Catalog.CreateMaterial)
}
