package middleware

import (
	"blog-backend/internal/auth"
	"blog-backend/internal/models"
	"blog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ClaimsFromLocals returns the claims RequireAuth or OptionalAuth stored.
func ClaimsFromLocals(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func IdentityFrom(c *fiber.Ctx) (models.Identity, error) {
	claims, ok := ClaimsFromLocals(c)
	if !ok {
		return models.Identity{}, fiber.ErrUnauthorized
	}
	return claims.Identity(), nil
}

// UIDObjectID returns the caller's user id as an ObjectID.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	id, err := IdentityFrom(c)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, err := utils.Oid(id.ID)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}
