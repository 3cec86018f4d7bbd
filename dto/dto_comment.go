package dto

type CreateCommentReq struct {
	Content string `json:"content" form:"content"`
	Author  string `json:"author" form:"author"`
	PostID  string `json:"postId" form:"postId"`
}
