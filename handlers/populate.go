package handlers

import (
	"context"

	"gg/database"
	"gg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// populatePosts resolves a list of post references into PostViews, keeping
// the input order. References to posts that no longer exist are dropped,
// deleted posts may linger in other users' feeds and post lists.
func populatePosts(ctx context.Context, ids []primitive.ObjectID) ([]models.PostView, error) {
	views := []models.PostView{}
	if len(ids) == 0 {
		return views, nil
	}

	cursor, err := database.Posts.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	postsByID := make(map[primitive.ObjectID]models.Post, len(posts))
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		postsByID[p.ID] = p
		authorIDs = append(authorIDs, p.Author)
	}

	authors, err := loadAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		post, ok := postsByID[id]
		if !ok {
			continue
		}
		author, ok := authors[post.Author]
		if !ok {
			continue
		}
		views = append(views, models.NewPostView(post, author))
	}
	return views, nil
}

// loadAuthors fetches the Author projection for a set of user ids.
func loadAuthors(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Author, error) {
	authors := make(map[primitive.ObjectID]models.Author)
	if len(ids) == 0 {
		return authors, nil
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		authors[u.ID] = models.NewAuthor(u)
	}
	return authors, nil
}

// populateUser expands posts, feed and notifications of a single user
// matched by the given filter.
func populateUser(ctx context.Context, filter bson.M) (*models.UserView, error) {
	var user models.User
	if err := database.Users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return populateUserDoc(ctx, user)
}

func populateUserDoc(ctx context.Context, user models.User) (*models.UserView, error) {
	posts, err := populatePosts(ctx, user.Posts)
	if err != nil {
		return nil, err
	}

	feed, err := populatePosts(ctx, user.Feed)
	if err != nil {
		return nil, err
	}

	notifUserIDs := make([]primitive.ObjectID, 0, len(user.Notifications))
	for _, n := range user.Notifications {
		notifUserIDs = append(notifUserIDs, n.User)
	}
	authors, err := loadAuthors(ctx, notifUserIDs)
	if err != nil {
		return nil, err
	}

	notifications := []models.NotificationView{}
	for _, n := range user.Notifications {
		author, ok := authors[n.User]
		if !ok {
			continue
		}
		notifications = append(notifications, models.NotificationView{
			Type:      n.Type,
			User:      author,
			CreatedAt: n.CreatedAt,
		})
	}

	view := models.NewUserView(user, posts, feed, notifications)
	return &view, nil
}
