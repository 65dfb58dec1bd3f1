package http

import (
	"crypto/sha256"
	"crypto/subtle"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// SetupRoutes configures all HTTP routes. The contact inbox answers 404
// unless adminToken is set, and then requires it as a bearer token.
func SetupRoutes(app *fiber.App, handler *Handler, metricsHandler nethttp.Handler, adminToken string) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// Page
	app.Get("/", handler.Index)

	if metricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/dashboard", handler.GetDashboard)

		// Portfolio content
		api.Get("/content", handler.GetContent)
		api.Get("/content/sections/:id", handler.GetSection)

		// Widgets
		widgets := api.Group("/widgets")
		widgets.Get("/clock", handler.GetClock)
		widgets.Get("/calendar", handler.GetCalendar)
		widgets.Get("/weather", handler.GetWeather)
		widgets.Get("/weather/codes/:code", handler.ClassifyWeatherCode)
		widgets.Get("/stats", handler.GetStats)
		widgets.Post("/carousel/advance", handler.AdvanceCarousel)
		widgets.Post("/carousel/select", handler.SelectCarousel)

		// Contact form
		api.Post("/contact", handler.SubmitContact)
		if adminToken != "" {
			api.Get("/contact", RequireToken(adminToken), handler.ListContacts)
		} else {
			api.Get("/contact", func(*fiber.Ctx) error { return fiber.ErrNotFound })
		}
	}
}

// ErrorHandler renders every error as the JSON envelope used by the API
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// RequireToken rejects requests without "Authorization: Bearer <token>".
func RequireToken(token string) fiber.Handler {
	want := sha256.Sum256([]byte(token))
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			got := sha256.Sum256([]byte(key))
			if subtle.ConstantTimeCompare(got[:], want[:]) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(_ *fiber.Ctx, _ error) error {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		},
	})
}
