package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content   string        `json:"content" bson:"content"`
	Author    string        `json:"author" bson:"author"`
	PostID    bson.ObjectID `json:"postId" bson:"postId"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}
