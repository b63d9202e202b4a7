package router

import "github.com/gofiber/fiber/v2"

// ServerRouter registers a group of routes on the API app.
type ServerRouter interface {
	BuildRoutes(app *fiber.App) error
}
