package controllers

import (
	"log/slog"

	"blog-backend/dto"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	Comments *services.CommentService
	Log      *slog.Logger
}

// @Summary      Create a comment
// @Description  The referenced post is not checked for existence
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCommentReq  true  "Comment payload"
// @Success      201   {object}  models.Comment
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	com, err := h.Comments.Create(ctx, services.CommentInput{
		PostID:  body.PostID,
		Author:  body.Author,
		Content: body.Content,
	})
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// @Summary      List comments of a post
// @Description  Newest first
// @Tags         comments
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      200  {array}   models.Comment
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /comments/{postId} [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Comments.ListByPost(ctx, c.Params("postId"))
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(items)
}
