package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the lightweight user projection attached to populated posts
// and notifications. Defined once so no handler can forget to strip a
// sensitive field.
type Author struct {
	ID           primitive.ObjectID `json:"_id"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Name         string             `json:"name"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	BannerImage  string             `json:"bannerImage,omitempty"`
}

func NewAuthor(u User) Author {
	return Author{
		ID:           u.ID,
		ProfileImage: u.ProfileImage,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		BannerImage:  u.BannerImage,
	}
}

// PostView is a post with its author expanded to the Author projection.
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Author    Author               `json:"author"`
	Likes     []primitive.ObjectID `json:"likes"`
	Content   Content              `json:"content"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func NewPostView(p Post, author Author) PostView {
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	return PostView{
		ID:        p.ID,
		Author:    author,
		Likes:     p.Likes,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PostDetail carries the full author document (password stripped by the
// User json tags) for the public post-details route.
type PostDetail struct {
	ID        primitive.ObjectID   `json:"_id"`
	Author    *User                `json:"author"`
	Likes     []primitive.ObjectID `json:"likes"`
	Content   Content              `json:"content"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type NotificationView struct {
	Type      string    `json:"type"`
	User      Author    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserView is the populated user returned by the profile and username
// routes: posts, feed and notifications expanded, password omitted.
type UserView struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Username string             `json:"username"`
	Role     string             `json:"role"`

	ProfileImage string     `json:"profileImage,omitempty"`
	BannerImage  string     `json:"bannerImage,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Location     string     `json:"location,omitempty"`
	Website      string     `json:"website,omitempty"`

	Posts         []PostView           `json:"posts"`
	Following     []primitive.ObjectID `json:"following"`
	Followers     []primitive.ObjectID `json:"followers"`
	Feed          []PostView           `json:"feed"`
	Notifications []NotificationView   `json:"notifications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserView(u User, posts, feed []PostView, notifications []NotificationView) UserView {
	if u.Following == nil {
		u.Following = []primitive.ObjectID{}
	}
	if u.Followers == nil {
		u.Followers = []primitive.ObjectID{}
	}
	if posts == nil {
		posts = []PostView{}
	}
	if feed == nil {
		feed = []PostView{}
	}
	if notifications == nil {
		notifications = []NotificationView{}
	}
	return UserView{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		ProfileImage:  u.ProfileImage,
		BannerImage:   u.BannerImage,
		BirthDate:     u.BirthDate,
		Bio:           u.Bio,
		Location:      u.Location,
		Website:       u.Website,
		Posts:         posts,
		Following:     u.Following,
		Followers:     u.Followers,
		Feed:          feed,
		Notifications: notifications,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
