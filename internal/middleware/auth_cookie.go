package middleware

import (
	"blog-backend/dto"
	"blog-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// RequireAuth loads the session cookie into Locals. A missing cookie is
// always 401; a cookie that fails verification answers with invalidStatus.
func RequireAuth(tokens *auth.Tokens, invalidStatus int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(auth.CookieName)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "not authenticated"})
		}

		claims, err := tokens.Verify(tok)
		if err != nil {
			return c.Status(invalidStatus).JSON(dto.ErrorResponse{Error: "invalid token"})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth stores claims when a valid cookie is present and never rejects.
func OptionalAuth(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := c.Cookies(auth.CookieName); tok != "" {
			if claims, err := tokens.Verify(tok); err == nil {
				c.Locals(claimsKey, claims)
			}
		}
		return c.Next()
	}
}
