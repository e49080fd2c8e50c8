package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"gg/database"
	"gg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// sameCalendarDay reports whether two instants fall on the same local
// calendar day. Both sides are converted first: the driver decodes BSON
// datetimes in UTC, comparing that against a local time.Now() would shift
// early-morning posts into yesterday.
func sameCalendarDay(a, b time.Time) bool {
	a, b = a.In(time.Local), b.In(time.Local)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// selectOwnFeedPosts picks the user's own posts for the feed. The input is
// ordered most-recent-first. The newest post always qualifies, every other
// post only if it was created today.
func selectOwnFeedPosts(own []models.Post, now time.Time) []primitive.ObjectID {
	feed := []primitive.ObjectID{}
	for i, post := range own {
		if i == 0 || sameCalendarDay(post.CreatedAt, now) {
			feed = append(feed, post.ID)
		}
	}
	return feed
}

// GetFeed recomputes the caller's feed: all of today's own posts (plus the
// most recent own post regardless of age), then the single latest post of
// each followed user. The result is persisted on the user document and
// returned populated.
func GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	user, err := findUserByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	ownPosts, err := loadPostsInOrder(ctx, user.Posts)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to build feed", err)
		return
	}

	feed := selectOwnFeedPosts(ownPosts, time.Now())

	// Latest post of each followed user, no date filter.
	for _, followedID := range user.Following {
		followed, err := findUserByID(ctx, followedID)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			fail(c, http.StatusInternalServerError, "Unable to build feed", err)
			return
		}
		if len(followed.Posts) > 0 {
			feed = append(feed, followed.Posts[0])
		}
	}

	_, err = database.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"feed": feed, "updatedAt": time.Now()}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to build feed", err)
		return
	}

	populated, err := populatePosts(ctx, feed)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to build feed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "feed": populated})
}

// loadPostsInOrder fetches post documents and returns them in the order of
// the id list, silently skipping dangling references.
func loadPostsInOrder(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	ordered := []models.Post{}
	if len(ids) == 0 {
		return ordered, nil
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

	byID := make(map[primitive.ObjectID]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		} else {
			log.Printf("[GetFeed] dangling post reference %s", id.Hex())
		}
	}
	return ordered, nil
}
