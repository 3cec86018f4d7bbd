package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID        bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title     string          `json:"title" bson:"title"`
	Summary   string          `json:"summary" bson:"summary"`
	Content   string          `json:"content" bson:"content"`
	Cover     *string         `json:"cover" bson:"cover"`
	Author    string          `json:"author" bson:"author"`
	Likes     []bson.ObjectID `json:"likes" bson:"likes"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// LikedBy reports whether uid is in the like set.
func (p *Post) LikedBy(uid bson.ObjectID) bool {
	return slices.Contains(p.Likes, uid)
}

// PostSummary is one row of the post listing.
type PostSummary struct {
	Post         `bson:",inline"`
	LikesCount   int `json:"likesCount" bson:"likesCount"`
	CommentCount int `json:"commentCount" bson:"commentCount"`
}

// PostDetail is a single post with its comment count.
type PostDetail struct {
	Post         `bson:",inline"`
	CommentCount int64 `json:"commentCount" bson:"commentCount"`
}

// PostUpdate carries the fields an author may change. Nil means untouched.
type PostUpdate struct {
	Title   *string
	Summary *string
	Content *string
	Cover   *string
}

func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.Summary == nil && u.Content == nil && u.Cover == nil
}
