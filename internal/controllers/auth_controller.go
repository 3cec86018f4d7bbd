package controllers

import (
	"log/slog"

	"blog-backend/dto"
	"blog-backend/internal/auth"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Secure bool
	Log    *slog.Logger
}

// Register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CredentialsReq  true  "Credentials"
// @Success      201   {object}  dto.RegisterResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body dto.CredentialsReq
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Register(ctx, body.Username, body.Password)
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResp{Username: u.Username, ID: u.ID.Hex()})
}

// Login godoc
// @Summary      Log in
// @Description  Sets the httpOnly "token" cookie on success
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CredentialsReq  true  "Credentials"
// @Success      200   {object}  dto.LoginResp
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.CredentialsReq
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, token, err := h.Auth.Login(ctx, body.Username, body.Password)
	if err != nil {
		return respond(c, h.Log, err)
	}

	c.Cookie(auth.SessionCookie(token, h.Auth.Tokens.TTL(), h.Secure))
	return c.JSON(dto.LoginResp{ID: id.ID, Username: id.Username})
}

// Profile godoc
// @Summary      Current session
// @Description  Returns the decoded token. Without a valid cookie it still answers 200 with an error field.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  auth.Claims
// @Router       /profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromLocals(c)
	if !ok {
		return c.JSON(dto.ErrorResponse{Error: "not authenticated"})
	}
	return c.JSON(claims)
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ClearedCookie(h.Secure))
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}
