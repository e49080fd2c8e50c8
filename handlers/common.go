package handlers

import (
	"context"
	"net/http"
	"time"

	"gg/config"
	"gg/database"
	"gg/models"
	"gg/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var cfg *config.Config
var wsManager *websocket.Manager

// Init wires the handler package with its explicit dependencies.
// Called once from main before the router is built.
func Init(c *config.Config, manager *websocket.Manager) {
	cfg = c
	wsManager = manager
}

const dbTimeout = 10 * time.Second

func dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// fail writes the error envelope every route shares:
// {success:false, message, errorMessage}.
func fail(c *gin.Context, status int, message string, err error) {
	errorMessage := message
	if err != nil {
		errorMessage = err.Error()
	}
	c.JSON(status, gin.H{
		"success":      false,
		"message":      message,
		"errorMessage": errorMessage,
	})
}

// currentUserID resolves the authenticated user id set by the JWT
// middleware. A token carrying a malformed id is treated as unauthorized.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		fail(c, http.StatusUnauthorized, "Unauthorised access, put valid token", nil)
		return primitive.NilObjectID, false
	}
	return userID, true
}

func mongoReturnUpdated() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func findUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func findPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// prependNotification is the update document that puts a notification at
// the head of a user's list, newest first.
func prependNotification(notif models.Notification) bson.M {
	return bson.M{"$push": bson.M{"notifications": bson.M{
		"$each":     []models.Notification{notif},
		"$position": 0,
	}}}
}

// deliver fans a stored notification out over websocket and web push.
// Delivery is best effort, failures never surface to the request.
func deliver(target primitive.ObjectID, notifType string, actor primitive.ObjectID, actorName string) {
	if wsManager != nil {
		wsManager.SendToUser(target.Hex(), websocket.Event{
			Type: notifType,
			From: actor.Hex(),
		})
	}

	switch notifType {
	case "follow":
		sendPush(target, actorName+" started following you")
	case "like":
		sendPush(target, actorName+" liked your post")
	}
}
