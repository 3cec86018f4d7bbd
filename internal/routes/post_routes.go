package routes

import (
	"blog-backend/internal/auth"
	"blog-backend/internal/controllers"
	"blog-backend/internal/metrics"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPosts(app *fiber.App, d Deps, tokens *auth.Tokens) {
	h := &controllers.PostHandler{
		Posts: &services.PostService{
			Posts:    d.Store.Posts,
			Comments: d.Store.Comments,
			Log:      d.Log,
			OnLike:   metrics.ObserveLike,
		},
		Storage: d.Storage,
		Log:     d.Log,
	}
	authed := middleware.RequireAuth(tokens, fiber.StatusUnauthorized)

	// multipart: title, summary, content, files
	app.Post("/postWrite", authed, h.Create)

	// GET /postlist?page=0&limit=3&sort=likes
	app.Get("/postlist", h.List)

	app.Get("/post/:postId", h.Get)
	app.Put("/post/:postId", authed, h.Update)
	app.Delete("/post/:postId", authed, h.Delete)

	// a bad token on like is 403, a missing one 401
	app.Post("/like/:postId", middleware.RequireAuth(tokens, fiber.StatusForbidden), h.Like)
}
