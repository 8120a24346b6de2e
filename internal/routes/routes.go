package routes

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Recipe     *handlers.RecipeHandler
	Poster     *handlers.PosterHandler
	Article    *handlers.ArticleHandler
	Suggestion *handlers.SuggestionHandler
	Health     *handlers.HealthHandler
}

// NewApp builds the Fiber app with the global middleware chain. Multipart
// bodies carry up to three images, so the body limit leaves room above
// the per-file cap.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4*media.MaxFileSize + 1<<20,
		ErrorHandler: ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(metrics.Middleware())

	return app
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Use(rateLimit(cfg.RateLimitAPI))

	api.Get("/health", h.Health.Check)

	jwt := middleware.JWTProtected(cfg)
	optional := middleware.OptionalJWT(cfg)

	auth := api.Group("/auth")
	auth.Use(rateLimit(cfg.RateLimitAuth))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/verify/:token", h.Auth.VerifyEmail)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", jwt, h.Auth.Logout)

	users := api.Group("/users")
	users.Get("/me", jwt, h.User.Me)
	users.Patch("/me", jwt, h.User.UpdateMe)
	users.Delete("/me", jwt, h.User.DeleteMe)

	// Static segments are registered before /:id so they win the match.
	recipes := api.Group("/recipes")
	recipes.Get("/", optional, h.Recipe.List)
	recipes.Get("/trending", optional, h.Recipe.Trending)
	recipes.Get("/mine", jwt, h.Recipe.Mine)
	recipes.Get("/saved", jwt, h.Recipe.Saved)
	recipes.Get("/:id", optional, h.Recipe.Get)
	recipes.Post("/", jwt, h.Recipe.Create)
	recipes.Patch("/:id", jwt, h.Recipe.Update)
	recipes.Delete("/:id", jwt, h.Recipe.Delete)
	recipes.Post("/:id/save", jwt, h.Recipe.Save)
	recipes.Delete("/:id/save", jwt, h.Recipe.Unsave)

	posters := api.Group("/posters")
	posters.Post("/", jwt, h.Poster.Create)
	posters.Get("/", h.Poster.List)
	posters.Get("/:id", h.Poster.Get)
	posters.Get("/:id/recipe", optional, h.Poster.Recipe)

	articles := api.Group("/articles")
	articles.Post("/", jwt, h.Article.Create)
	articles.Get("/", h.Article.List)
	articles.Get("/:id", h.Article.Get)

	suggestions := api.Group("/suggestions")
	suggestions.Post("/", h.Suggestion.FindByIngredients)
	suggestions.Get("/:id", h.Suggestion.Information)
}

// rateLimit is a per-IP sliding window of max requests per minute.
func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			metrics.RateLimitRejected()
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Too many requests, please try again later",
			})
		},
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only client errors expose their message.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
