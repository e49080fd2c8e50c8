package handlers

import (
	"net/http"
	"time"

	"gg/database"
	"gg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Content models.Content `json:"content"`
}

// CreatePost inserts the post and prepends its id to the author's posts
// list, both inside one transaction. The response carries the post with a
// lightweight author projection.
func CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}
	if req.Content.Text == "" && len(req.Content.Images) == 0 {
		fail(c, http.StatusBadRequest, "Data not formatted properly", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	author, err := findUserByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to create post", err)
		return
	}

	now := time.Now()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Author:    userID,
		Likes:     []primitive.ObjectID{},
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	session, err := database.Client.StartSession()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to create post", err)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := database.Posts.InsertOne(sessCtx, post); err != nil {
			return nil, err
		}
		_, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": userID},
			bson.M{
				"$push": bson.M{"posts": bson.M{
					"$each":     []primitive.ObjectID{post.ID},
					"$position": 0,
				}},
				"$set": bson.M{"updatedAt": now},
			},
		)
		return nil, err
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to create post", err)
		return
	}

	view := models.NewPostView(post, models.NewAuthor(*author))
	c.JSON(http.StatusOK, gin.H{"success": true, "post": view})
}

func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	post, err := findPostByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while retreiving the post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// DeletePost removes the post and cascades the reference out of the
// author's posts list. Feed references held by other users are cleaned up
// lazily, the next feed rebuild drops them.
func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	post, err := findPostByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while retreiving the post", err)
		return
	}

	session, err := database.Client.StartSession()
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while deleting post", err)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := database.Posts.DeleteOne(sessCtx, bson.M{"_id": postID}); err != nil {
			return nil, err
		}
		_, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": post.Author},
			bson.M{"$pull": bson.M{"posts": postID}},
		)
		return nil, err
	})
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while deleting post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
		"post":    post,
		"deleted": true,
	})
}

type LikeRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// Likes are a set: $addToSet keeps a double like from duplicating the
// user, $pull makes unlike a no-op on a post that was never liked.

func likeUpdate(userID primitive.ObjectID) bson.M {
	return bson.M{"$addToSet": bson.M{"likes": userID}}
}

func unlikeUpdate(userID primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{"likes": userID}}
}

// LikePost adds the caller to the like set. Liking twice is a no-op, the
// set semantics come from $addToSet. A first-time like on someone else's
// post notifies the author.
func LikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	post, err := findPostByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while retreiving the post", err)
		return
	}

	res, err := database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		likeUpdate(userID),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to like post", err)
		return
	}

	if res.ModifiedCount > 0 && post.Author != userID {
		actor, err := findUserByID(ctx, userID)
		if err == nil {
			notif := models.Notification{Type: "like", User: userID, CreatedAt: time.Now()}
			if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": post.Author}, prependNotification(notif)); err == nil {
				deliver(post.Author, "like", userID, actor.Name)
			}
		}
	}

	respondWithPopulatedPost(c, postID)
}

// UnlikePost removes the caller from the like set. Unliking a post that
// was never liked is a no-op.
func UnlikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	_, err = database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		unlikeUpdate(userID),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to unlike post", err)
		return
	}

	respondWithPopulatedPost(c, postID)
}

func respondWithPopulatedPost(c *gin.Context, postID primitive.ObjectID) {
	ctx, cancel := dbContext()
	defer cancel()

	views, err := populatePosts(ctx, []primitive.ObjectID{postID})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving post", err)
		return
	}
	if len(views) == 0 {
		fail(c, http.StatusBadRequest, "Post not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post": views[0]})
}

// GetPostDetails is the public, author-populated post read.
func GetPostDetails(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Error while retreiving the post", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	post, err := findPostByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusNotFound, "Post not found", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving post", err)
		return
	}

	detail := models.PostDetail{
		ID:        post.ID,
		Likes:     post.Likes,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if detail.Likes == nil {
		detail.Likes = []primitive.ObjectID{}
	}

	author, err := findUserByID(ctx, post.Author)
	if err == nil {
		detail.Author = author
	} else if err != mongo.ErrNoDocuments {
		fail(c, http.StatusInternalServerError, "Error while retreiving post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": detail})
}
