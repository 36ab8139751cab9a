package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/inkwell-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	userHandler *handlers.UserHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Health (outside the versioned group, no rate limit)
	api.Get("/health", healthHandler.Check)

	v1 := api.Group("/v1")

	// General API rate limiter: 60 req/min per IP
	v1.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Auth — public, with a stricter limit: 10 req/min per IP
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	v1.Post("/signup", authLimit, authHandler.Signup)
	v1.Post("/signin", authLimit, authHandler.Signin)

	// Public blog reads
	v1.Get("/blogs", blogHandler.List)
	v1.Get("/blogs/recent", blogHandler.ListRecent)
	v1.Get("/blog/:id", blogHandler.GetByID)
	v1.Get("/blog/:id/comments", blogHandler.GetComments)

	// Protected routes (JWT required) - apply middleware to individual
	// routes so it never shadows the public reads above
	protected := middleware.Protected(cfg)

	v1.Post("/upload-image", protected, uploadHandler.UploadImage)

	v1.Post("/blog", protected, blogHandler.Create)
	v1.Put("/blog/:id", protected, blogHandler.Update)
	v1.Delete("/blog/:id", protected, blogHandler.Delete)
	v1.Post("/blog/:id/comment", protected, blogHandler.AddComment)
	v1.Post("/blog/:id/like", protected, blogHandler.Like)
	v1.Post("/blog/:id/unlike", protected, blogHandler.Unlike)

	v1.Get("/user/profile", protected, userHandler.GetProfile)
	v1.Put("/user/update", protected, userHandler.UpdateProfile)
	v1.Put("/user/change-password", protected, userHandler.ChangePassword)
}
