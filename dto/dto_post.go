package dto

import "blog-backend/internal/models"

// UpdatePostResp is returned by PUT /post/:postId.
type UpdatePostResp struct {
	Message string       `json:"message"`
	Post    *models.Post `json:"post"`
}
