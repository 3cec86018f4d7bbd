package controllers

import (
	"errors"
	"log/slog"
	"mime"
	"path/filepath"

	"blog-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Storage storage.Storage
	Log     *slog.Logger
}

// Serve streams a stored cover image.
func (h *UploadHandler) Serve(c *fiber.Ctx) error {
	name, ok := storage.CleanName(c.Params("name"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "not found")
	}

	rc, err := h.Storage.Open(c.UserContext(), name)
	if errors.Is(err, storage.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if err != nil {
		h.Log.Error("open upload failed", "name", name, "err", err)
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.SendStream(rc)
}
