package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ChatMessage struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      string        `json:"user" bson:"user"`
	Text      string        `json:"text" bson:"text"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
