package routes

import (
	"blog-backend/internal/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChat(app *fiber.App, d Deps) {
	app.Use("/socket", chat.RequireUpgrade)
	app.Get("/socket", chat.Socket(d.Hub, d.Relay, d.Log))
}
