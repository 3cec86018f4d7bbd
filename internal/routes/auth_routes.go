package routes

import (
	"blog-backend/internal/auth"
	"blog-backend/internal/controllers"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuth(app *fiber.App, d Deps, tokens *auth.Tokens) {
	h := &controllers.AuthHandler{
		Auth: &services.AuthService{
			Users:  d.Store.Users,
			Hasher: auth.Hasher{Cost: d.Config.BcryptCost},
			Tokens: tokens,
		},
		Secure: d.Config.Production,
		Log:    d.Log,
	}

	// POST /register {username, password} -> 201 {username, _id}
	app.Post("/register", h.Register)

	// POST /login sets the token cookie
	app.Post("/login", h.Login)

	// GET /profile answers 200 even without a session
	app.Get("/profile", middleware.OptionalAuth(tokens), h.Profile)

	app.Post("/logout", h.Logout)
}
