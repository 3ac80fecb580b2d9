package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lenslate/lenslate/internal/security"
)

// SetupRoutes configures the API routes
func SetupRoutes(app *fiber.App, handler *Handler, apiKey string) {
	app.Use(security.SecurityHeadersMiddleware())

	app.Get("/health", handler.HealthCheck)

	app.Post("/translate", security.APIKeyMiddleware(apiKey), handler.Translate)
}
