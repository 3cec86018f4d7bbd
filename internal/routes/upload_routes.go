package routes

import (
	"blog-backend/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

// GET /uploads/<name> serves covers saved as "uploads/<name>"
func SetupUploads(app *fiber.App, d Deps) {
	h := &controllers.UploadHandler{Storage: d.Storage, Log: d.Log}
	app.Get("/uploads/:name", h.Serve)
}
