package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the canonical users-collection document. The password hash is
// excluded from JSON by the struct tag, it can never leak through a
// marshalled response.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Username string             `bson:"username" json:"username"`
	Role     string             `bson:"role" json:"role"` // user, admin

	ProfileImage string     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	BannerImage  string     `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	BirthDate    *time.Time `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Bio          string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Location     string     `bson:"location,omitempty" json:"location,omitempty"`
	Website      string     `bson:"website,omitempty" json:"website,omitempty"`

	// Most-recent-first by convention: new post ids are prepended.
	Posts []primitive.ObjectID `bson:"posts" json:"posts"`

	Following []primitive.ObjectID `bson:"following" json:"following"`
	Followers []primitive.ObjectID `bson:"followers" json:"followers"`

	// Recomputed on every feed request, see handlers.GetFeed.
	Feed []primitive.ObjectID `bson:"feed" json:"feed"`

	// Newest first: new notifications are prepended.
	Notifications []Notification `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Notification is embedded in the user document.
type Notification struct {
	Type      string             `bson:"type" json:"type"` // follow, like
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
