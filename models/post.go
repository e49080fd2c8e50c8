package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Content   Content              `bson:"content" json:"content"`
	Replies   []primitive.ObjectID `bson:"replies,omitempty" json:"replies,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Content struct {
	Text   string   `bson:"text" json:"text"`
	Images []string `bson:"images,omitempty" json:"images,omitempty"`
}
