package controllers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blog-backend/dto"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 5 * time.Second

func reqCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// respond maps a service error onto the HTTP taxonomy. Anything unexpected
// is logged and reported as a bare 500.
func respond(c *fiber.Ctx, log *slog.Logger, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrInvalidID):
		return fail(c, fiber.StatusBadRequest, "invalid id")
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusConflict, "username already taken")
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "wrong credentials")
	default:
		log.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "err", err)
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler renders errors that escape handlers, including fiber's own.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fail(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "err", err)
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
