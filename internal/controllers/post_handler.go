package controllers

import (
	"log/slog"

	"blog-backend/dto"
	"blog-backend/internal/middleware"
	"blog-backend/internal/models"
	"blog-backend/internal/services"
	"blog-backend/internal/storage"
	"blog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type PostHandler struct {
	Posts   *services.PostService
	Storage storage.Storage
	Log     *slog.Logger
}

// formField returns a form value only when the client actually sent it.
func formField(c *fiber.Ctx, name string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value[name]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	if args := c.Request().PostArgs(); args.Has(name) {
		v := string(args.Peek(name))
		return &v
	}
	return nil
}

// saveCover stores the optional "files" upload and returns its cover path.
func (h *PostHandler) saveCover(c *fiber.Ctx) (*string, error) {
	file, err := c.FormFile("files")
	if err != nil || file == nil {
		return nil, nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cover, err := storage.SaveUpload(ctx, h.Storage, file)
	if err != nil {
		return nil, err
	}
	return &cover, nil
}

func postID(c *fiber.Ctx) (bson.ObjectID, bool) {
	oid, err := utils.Oid(c.Params("postId"))
	return oid, err == nil
}

// Create godoc
// @Summary      Write a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  false  "Title"
// @Param        summary  formData  string  false  "Summary"
// @Param        content  formData  string  false  "Content"
// @Param        files    formData  file    false  "Cover image"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /postWrite [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	id, err := middleware.IdentityFrom(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	cover, err := h.saveCover(c)
	if err != nil {
		h.Log.Error("save cover failed", "err", err)
		return fail(c, fiber.StatusInternalServerError, "failed to save file")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	_, err = h.Posts.Create(ctx, id.Username, services.PostInput{
		Title:   c.FormValue("title"),
		Summary: c.FormValue("summary"),
		Content: c.FormValue("content"),
		Cover:   cover,
	})
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post created"})
}

// List godoc
// @Summary      List posts
// @Description  Offset pagination with derived likesCount and commentCount
// @Tags         posts
// @Produce      json
// @Param        page   query  int     false  "Zero-based page"  default(0)
// @Param        limit  query  int     false  "Page size"        default(3)
// @Param        sort   query  string  false  "createdAt | likes | commentCount"
// @Success      200  {object}  services.ListResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /postlist [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	q := services.ParseListQuery(c.Query("page"), c.Query("limit"), c.Query("sort"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Posts.List(ctx, q)
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(res)
}

// Get godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      200  {object}  models.PostDetail
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /post/{postId} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	pid, ok := postID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Posts.Get(ctx, pid)
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(detail)
}

// Update godoc
// @Summary      Edit a post
// @Description  Only the author may edit. Fields left out of the form keep their value. A new file replaces the cover.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        postId   path      string  true   "Post ID (hex ObjectID)"
// @Param        title    formData  string  false  "Title"
// @Param        summary  formData  string  false  "Summary"
// @Param        content  formData  string  false  "Content"
// @Param        files    formData  file    false  "Cover image"
// @Success      200  {object}  dto.UpdatePostResp
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /post/{postId} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := middleware.IdentityFrom(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}
	pid, ok := postID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	cover, err := h.saveCover(c)
	if err != nil {
		h.Log.Error("save cover failed", "err", err)
		return fail(c, fiber.StatusInternalServerError, "failed to save file")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	updated, err := h.Posts.Update(ctx, pid, id.Username, models.PostUpdate{
		Title:   formField(c, "title"),
		Summary: formField(c, "summary"),
		Content: formField(c, "content"),
		Cover:   cover,
	})
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(dto.UpdatePostResp{Message: "Post updated", Post: updated})
}

// Delete godoc
// @Summary      Delete a post and its comments
// @Description  Needs the session cookie and only the author may delete. Older clients that called this route without a cookie now get 401.
// @Tags         posts
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /post/{postId} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := middleware.IdentityFrom(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}
	pid, ok := postID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Posts.Delete(ctx, pid, id.Username); err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

// Like godoc
// @Summary      Toggle like
// @Description  Adds the caller to likes, or removes them if already there. Returns the whole post.
// @Tags         posts
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      200  {object}  models.Post
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /like/{postId} [post]
func (h *PostHandler) Like(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return fail(c, fiber.StatusForbidden, "invalid token")
	}
	pid, ok := postID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.ToggleLike(ctx, pid, uid)
	if err != nil {
		return respond(c, h.Log, err)
	}
	return c.JSON(post)
}
