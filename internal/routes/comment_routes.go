package routes

import (
	"blog-backend/internal/controllers"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupComments(app *fiber.App, d Deps) {
	h := &controllers.CommentHandler{
		Comments: &services.CommentService{Comments: d.Store.Comments},
		Log:      d.Log,
	}

	// POST /comments {content, author, postId}
	app.Post("/comments", h.Create)

	// GET /comments/:postId newest first
	app.Get("/comments/:postId", h.List)
}
